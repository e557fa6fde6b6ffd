// Package verify wraps the external face-similarity service. The rest of the
// system treats it as an opaque match oracle: it receives a live sample and a
// stored reference, and reports whether they belong to the same person.
package verify

import "context"

// Result is the collaborator's verdict. Distance is a similarity distance:
// lower means more similar. The caller decides the acceptance threshold.
type Result struct {
	Success  bool    `json:"success"`
	Match    bool    `json:"match"`
	Distance float64 `json:"distance"`
}

// Verifier compares a live-captured image against a stored reference.
// Implementations must respect ctx cancellation; the check-in path bounds the
// call with a timeout and treats expiry as a hard failure, never a retry.
type Verifier interface {
	Compare(ctx context.Context, liveImage []byte, reference string) (Result, error)
}
