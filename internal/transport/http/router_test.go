package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"rollcall/internal/platform/metrics"
	"rollcall/pkg/testutil"
)

// platformMetrics is shared across tests: promauto registers into the global
// registry, so the collectors must be created exactly once per binary.
var platformMetrics = metrics.New()

type panicModule struct{}

func (panicModule) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })
}

func TestRouter(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("healthz reports ok", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, func(context.Context) error { return nil })
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		env := testutil.AssertSuccess(t, rr)
		assert.Equal(t, "ok", env.Message)
	})

	t.Run("healthz surfaces a failing store", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, func(context.Context) error { return errors.New("down") })
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertFailure(t, rr, http.StatusServiceUnavailable, "backing store unavailable")
	})

	t.Run("metrics endpoint is mounted", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, nil)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
	})

	t.Run("assigns a request id when the client sends none", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, nil)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("echoes a client-supplied request id", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, nil)
		req := testutil.NewRequest(t, http.MethodGet, "/healthz")
		req.Header.Set("X-Request-ID", "req-42")
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
	})

	t.Run("rejects non-JSON mutating requests", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, nil)
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/healthz", "<xml/>")
		req.Header.Set("Content-Type", "text/xml")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusUnsupportedMediaType)
	})

	t.Run("recovers from a module panic", func(t *testing.T) {
		router := NewRouter(logger, platformMetrics, nil, panicModule{})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/boom"))
		testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	})
}
