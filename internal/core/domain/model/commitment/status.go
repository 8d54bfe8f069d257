package commitment

import (
	"fmt"

	"lading/internal/pkg/errs"
)

// Status represents the lifecycle state of a commitment job.
// It implements a small state machine:
//
//	Queued ──> Submitting ──┬──> Committed (terminal)
//	   ▲                    │
//	   └────────────────────┼──  (transient failure, retry budget left)
//	                        │
//	                        └──> FailedPermanent (terminal, retries exhausted)
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusQueued indicates the job is waiting in the commitment queue.
	StatusQueued

	// StatusSubmitting indicates the job has been picked into a batch and is
	// in flight to the ledger. Cancellation is no longer possible.
	StatusSubmitting

	// StatusCommitted indicates the ledger has durably recorded the transition. Terminal.
	StatusCommitted

	// StatusFailedPermanent indicates the job exhausted its retry budget or hit
	// a non-retryable failure. The application state and the ledger have
	// diverged and reconciliation is required. Terminal.
	StatusFailedPermanent
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "Unknown",
		StatusQueued:          "Queued",
		StatusSubmitting:      "Submitting",
		StatusCommitted:       "Committed",
		StatusFailedPermanent: "FailedPermanent",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	switch s {
	case StatusQueued, StatusSubmitting, StatusCommitted, StatusFailedPermanent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid job status", s))
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCommitted || s == StatusFailedPermanent
}

// Submit transitions the status to Submitting.
// Only queued jobs may be picked for submission.
func (s Status) Submit() (Status, error) {
	if s != StatusQueued {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to submit from", s.String()),
		)
	}
	return StatusSubmitting, nil
}

// Commit transitions the status to Committed.
// Only in-flight jobs may be committed.
func (s Status) Commit() (Status, error) {
	if s != StatusSubmitting {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to commit from", s.String()),
		)
	}
	return StatusCommitted, nil
}

// Requeue transitions the status back to Queued after a transient failure.
func (s Status) Requeue() (Status, error) {
	if s != StatusSubmitting {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to requeue from", s.String()),
		)
	}
	return StatusQueued, nil
}

// Fail transitions the status to FailedPermanent.
// Only in-flight jobs may be dead-lettered.
func (s Status) Fail() (Status, error) {
	if s != StatusSubmitting {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to fail from", s.String()),
		)
	}
	return StatusFailedPermanent, nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
