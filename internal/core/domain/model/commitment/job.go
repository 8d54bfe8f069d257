package commitment

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"lading/internal/core/domain/model/kernel"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through the NewJob factory method.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
)

// Job is a queued unit of work representing "this state transition must
// eventually be recorded on the ledger". Exactly one job is created per
// successful document state change.
//
// A job references its document by id and version only; it never manages the
// document's lifetime. Jobs are retained in memory until they reach a
// terminal status plus a short grace period, after which they are discarded.
// Permanent record-keeping is the audit collaborator's responsibility.
//
// Jobs are mutated only by the batch committer, and all access is serialized
// through the commitment queue's lock.
type Job struct {
	// id is the unique identifier for the job
	id kernel.UUID

	// documentID correlates the job with its bill of lading
	documentID kernel.UUID

	// documentVersion is the version produced by the state change this job records
	documentVersion int64

	// jobType classifies the ledger operation
	jobType JobType

	// payload is the opaque data submitted to the ledger
	payload map[string]any

	// priority determines queue service order
	priority Priority

	// enqueuedAt is when the job was first accepted into the queue
	enqueuedAt time.Time

	// retryCount is the number of transient failures seen so far
	retryCount int

	// status is the job's position in its lifecycle state machine
	status Status

	// ledgerRef is the ledger's reference for a committed job
	ledgerRef string

	// lastError describes the most recent submission failure
	lastError string

	// completedAt is when the job reached a terminal status
	completedAt *time.Time

	// isConstructed ensures the job was created via NewJob
	isConstructed bool
}

// NewJob creates a queued commitment job for a document state change.
// The payload is copied so later caller mutations cannot leak into the job.
func NewJob(
	id kernel.UUID,
	documentID kernel.UUID,
	documentVersion int64,
	jobType JobType,
	payload map[string]any,
	priority Priority,
) (*Job, error) {
	if err := errors.Join(
		id.Validate(),
		documentID.Validate(),
		jobType.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}

	return &Job{
		id:              id,
		documentID:      documentID,
		documentVersion: documentVersion,
		jobType:         jobType,
		payload:         maps.Clone(payload),
		priority:        priority,
		enqueuedAt:      time.Now().UTC(),
		status:          StatusQueued,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Job instance was properly constructed through NewJob.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// DocumentID returns the identifier of the correlated bill of lading.
func (j *Job) DocumentID() kernel.UUID {
	return j.documentID
}

// DocumentVersion returns the document version this job records.
func (j *Job) DocumentVersion() int64 {
	return j.documentVersion
}

// Type returns the job's ledger operation classification.
func (j *Job) Type() JobType {
	return j.jobType
}

// Payload returns a copy of the job's ledger payload.
func (j *Job) Payload() map[string]any {
	return maps.Clone(j.payload)
}

// Priority returns the job's queue priority.
func (j *Job) Priority() Priority {
	return j.priority
}

// EnqueuedAt returns when the job was first accepted into the queue.
func (j *Job) EnqueuedAt() time.Time {
	return j.enqueuedAt
}

// RetryCount returns the number of transient failures seen so far.
func (j *Job) RetryCount() int {
	return j.retryCount
}

// Status returns the job's current lifecycle status.
func (j *Job) Status() Status {
	return j.status
}

// LedgerRef returns the ledger's reference for a committed job, or "" if not committed.
func (j *Job) LedgerRef() string {
	return j.ledgerRef
}

// LastError returns a description of the most recent submission failure, or "".
func (j *Job) LastError() string {
	return j.lastError
}

// CompletedAt returns when the job reached a terminal status, or nil.
func (j *Job) CompletedAt() *time.Time {
	return j.completedAt
}

// IdempotencyKey derives the key attached to every ledger submission of this
// job, so duplicate submissions of the same state change are deduplicated
// regardless of ledger-side guarantees.
func (j *Job) IdempotencyKey() string {
	return fmt.Sprintf("%s:%d", j.documentID.String(), j.documentVersion)
}

// MarkSubmitting moves the job into a batch. Cancellation is no longer possible.
func (j *Job) MarkSubmitting() error {
	newStatus, err := j.status.Submit()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// MarkCommitted records a successful ledger commit with the ledger's reference.
func (j *Job) MarkCommitted(ledgerRef string) error {
	newStatus, err := j.status.Commit()
	if err != nil {
		return err
	}
	j.status = newStatus
	j.ledgerRef = ledgerRef
	j.lastError = ""
	now := time.Now().UTC()
	j.completedAt = &now
	return nil
}

// MarkRequeued records a transient failure and returns the job to the queue,
// incrementing its retry count.
func (j *Job) MarkRequeued(cause error) error {
	newStatus, err := j.status.Requeue()
	if err != nil {
		return err
	}
	j.status = newStatus
	j.retryCount++
	if cause != nil {
		j.lastError = cause.Error()
	}
	return nil
}

// MarkFailedPermanent dead-letters the job after retry exhaustion or a
// non-retryable failure. The correlated document has already advanced; this
// records that the ledger has not, so reconciliation can find the divergence.
func (j *Job) MarkFailedPermanent(cause error) error {
	newStatus, err := j.status.Fail()
	if err != nil {
		return err
	}
	j.status = newStatus
	if cause != nil {
		j.lastError = cause.Error()
	}
	now := time.Now().UTC()
	j.completedAt = &now
	return nil
}

// ResetForRequeue returns a dead-lettered job to the queue with a fresh retry
// budget. Used by the manual reconciliation path only.
func (j *Job) ResetForRequeue() error {
	if j.status != StatusFailedPermanent {
		return fmt.Errorf("only permanently failed jobs can be requeued, job is %s", j.status)
	}
	j.status = StatusQueued
	j.retryCount = 0
	j.lastError = ""
	j.completedAt = nil
	return nil
}

// Clone returns a deep copy of the job. The commitment queue hands out clones
// so readers never share mutable state with the committer.
func (j *Job) Clone() *Job {
	clone := *j
	clone.payload = maps.Clone(j.payload)
	if j.completedAt != nil {
		at := *j.completedAt
		clone.completedAt = &at
	}
	return &clone
}
