package verify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the face-verification service over HTTP. One request per
// check-in; the response is never cached because every live sample is unique.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a verification client. timeout bounds the whole call
// including connection setup; the service is on the check-in critical path
// and a hung verifier must fail the request, not park it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type compareRequest struct {
	Image     string `json:"image"` // base64-encoded live sample
	Reference string `json:"reference"`
}

func (c *Client) Compare(ctx context.Context, liveImage []byte, reference string) (Result, error) {
	payload, err := json.Marshal(compareRequest{
		Image:     base64.StdEncoding.EncodeToString(liveImage),
		Reference: reference,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode compare request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compare", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build compare request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call verification service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("verification service returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode compare response: %w", err)
	}
	return result, nil
}
