package ports

import (
	"errors"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/domain/model/kernel"
)

var (
	// ErrQueueFull is returned when an enqueue would exceed the queue's
	// maximum depth. Backpressure is explicit: the caller sees a retryable
	// capacity error instead of the queue growing unbounded.
	ErrQueueFull = errors.New("commitment queue is full")

	// ErrJobNotCancellable is returned when a cancellation request arrives
	// after the job was already picked into a batch or reached a terminal
	// status. Cancellation is best-effort and only covers queued jobs.
	ErrJobNotCancellable = errors.New("job is not cancellable")
)

// CommitmentQueue is the priority-ordered holding area for confirmed
// transitions awaiting ledger commit, plus the job-status registry that
// backs getJobStatus polling.
type CommitmentQueue interface {
	// Enqueue accepts a queued job, returning ErrQueueFull at max depth.
	Enqueue(job *commitment.Job) error

	// Job returns a snapshot of the job with the given id, or an
	// ObjectNotFoundError if it is unknown or already discarded.
	Job(id kernel.UUID) (*commitment.Job, error)

	// DeadLetters returns snapshots of all permanently failed jobs that
	// have not been requeued, for the reconciliation path.
	DeadLetters() []*commitment.Job

	// Cancel removes a still-queued job, best-effort.
	Cancel(id kernel.UUID) error

	// RequeueDeadLetter returns a permanently failed job to the queue with
	// a fresh retry budget. ErrQueueFull applies as for Enqueue.
	RequeueDeadLetter(id kernel.UUID) error
}
