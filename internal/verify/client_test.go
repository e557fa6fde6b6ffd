package verify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCompare(t *testing.T) {
	t.Run("sends the encoded sample and decodes the verdict", func(t *testing.T) {
		var got map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/compare", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(Result{Success: true, Match: true, Distance: 0.31})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second)
		result, err := client.Compare(context.Background(), []byte("live-sample"), "stored-reference")
		require.NoError(t, err)

		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("live-sample")), got["image"])
		assert.Equal(t, "stored-reference", got["reference"])
		assert.True(t, result.Match)
		assert.InDelta(t, 0.31, result.Distance, 1e-9)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Second)
		_, err := client.Compare(context.Background(), []byte("live-sample"), "ref")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Drain the body so the server notices the client going away;
			// the disconnect watcher only runs once the request is read.
			_, _ = io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		client := NewClient(srv.URL, time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.Compare(ctx, []byte("live-sample"), "ref")
		require.Error(t, err)
	})
}

func TestStubVerifier(t *testing.T) {
	t.Run("is deterministic per sample", func(t *testing.T) {
		stub := StubVerifier{}
		first, err := stub.Compare(context.Background(), []byte("same-bytes"), "ref")
		require.NoError(t, err)
		second, err := stub.Compare(context.Background(), []byte("same-bytes"), "ref")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("forced distance drives the verdict", func(t *testing.T) {
		stub := StubVerifier{Distance: 0.9}
		result, err := stub.Compare(context.Background(), []byte("x"), "ref")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.Match)
		assert.InDelta(t, 0.9, result.Distance, 1e-9)
	})
}
