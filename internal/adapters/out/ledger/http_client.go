// Package ledger provides the HTTP client for the external append-only
// commit service. The ledger is opaque to this engine: one submit endpoint,
// one acknowledgement, no consensus details.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lading/internal/core/ports"
)

// HTTPClient implements ports.LedgerClient against the ledger's JSON API.
//
// The client performs exactly one submission attempt per call and classifies
// the outcome; retry policy lives in the batch committer, which owns the
// job-level retry budget and backoff. Double-retrying here would multiply
// the effective attempt count invisibly.
//
// Failure classification:
//   - transport errors, HTTP 5xx, and HTTP 429 wrap ports.ErrLedgerTransient
//   - any other non-2xx response is permanent
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a ledger client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// submitRequest is the wire format of one ledger submission.
type submitRequest struct {
	JobType        string         `json:"jobType"`
	Payload        map[string]any `json:"payload"`
	IdempotencyKey string         `json:"idempotencyKey"`
}

// submitResponse is the ledger's acknowledgement.
type submitResponse struct {
	LedgerRef string `json:"ledgerRef"`
}

// Submit records one entry on the ledger.
func (c *HTTPClient) Submit(ctx context.Context, submission ports.LedgerSubmission) (ports.LedgerResult, error) {
	body, err := json.Marshal(submitRequest{
		JobType:        submission.JobType.String(),
		Payload:        submission.Payload,
		IdempotencyKey: submission.IdempotencyKey,
	})
	if err != nil {
		return ports.LedgerResult{}, fmt.Errorf("encode ledger submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/commits", bytes.NewReader(body))
	if err != nil {
		return ports.LedgerResult{}, fmt.Errorf("build ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", submission.IdempotencyKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.LedgerResult{}, fmt.Errorf("%w: %w", ports.ErrLedgerTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return ports.LedgerResult{}, fmt.Errorf("%w: ledger returned %d", ports.ErrLedgerTransient, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.LedgerResult{}, fmt.Errorf("ledger rejected submission: %d %s", resp.StatusCode, payload)
	}

	var ack submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return ports.LedgerResult{}, fmt.Errorf("%w: decode ledger response: %w", ports.ErrLedgerTransient, err)
	}

	return ports.LedgerResult{LedgerRef: ack.LedgerRef}, nil
}
