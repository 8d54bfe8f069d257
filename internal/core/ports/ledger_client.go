package ports

import (
	"context"
	"errors"

	"lading/internal/core/domain/model/commitment"
)

// ErrLedgerTransient marks a ledger submission failure that may succeed on
// retry (network errors, timeouts, throttling). The batch committer retries
// these with backoff; any other submission error is treated as permanent.
var ErrLedgerTransient = errors.New("transient ledger failure")

// LedgerSubmission is one job's worth of data submitted to the ledger.
type LedgerSubmission struct {
	// JobType classifies the ledger operation.
	JobType commitment.JobType

	// Payload is the opaque content recorded on the ledger.
	Payload map[string]any

	// IdempotencyKey deduplicates repeated submissions of the same state
	// change (documentId:version), so a retried job is never double-recorded.
	IdempotencyKey string
}

// LedgerResult is the ledger's acknowledgement of a committed submission.
type LedgerResult struct {
	// LedgerRef is the ledger's reference for the recorded entry.
	LedgerRef string
}

// LedgerClient is the opaque commit service contract. The ledger is an
// external append-only, tamper-resistant store; this core never implements
// consensus, it only submits and awaits acknowledgement.
//
// Submissions are retry-safe at job granularity: duplicate submissions of
// the same job carry the same idempotency key.
type LedgerClient interface {
	// Submit records one entry on the ledger.
	// Failures wrapping ErrLedgerTransient may be retried; anything else
	// is permanent.
	Submit(ctx context.Context, submission LedgerSubmission) (LedgerResult, error)
}
