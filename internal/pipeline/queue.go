package pipeline

import (
	"fmt"
	"sync"
	"time"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/ports"
	"lading/internal/pkg/errs"
)

// QueueConfig bounds the commitment queue.
type QueueConfig struct {
	// MaxDepth is the maximum number of jobs waiting for submission.
	// Enqueues beyond this depth fail with ports.ErrQueueFull.
	MaxDepth int

	// BatchThreshold is the queue depth at which the committer is nudged
	// to run immediately instead of waiting for the next scheduled cycle.
	BatchThreshold int

	// TerminalGracePeriod is how long committed and permanently failed jobs
	// stay queryable before being discarded from the registry. Dead letters
	// are exempt: they stay until requeued.
	TerminalGracePeriod time.Duration
}

// Validate checks the configuration is usable.
func (c QueueConfig) Validate() error {
	if c.MaxDepth <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxDepth", fmt.Errorf("%d is not greater than 0", c.MaxDepth))
	}
	if c.BatchThreshold <= 0 || c.BatchThreshold > c.MaxDepth {
		return errs.NewValueIsOutOfRangeError("batchThreshold", c.BatchThreshold, 1, c.MaxDepth)
	}
	if c.TerminalGracePeriod <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("terminalGracePeriod",
			fmt.Errorf("%s is not greater than 0", c.TerminalGracePeriod))
	}
	return nil
}

// Queue is the priority-ordered holding area for commitment jobs and the
// in-memory job-status registry behind getJobStatus polling.
//
// Two tiers of lock-protected deques implement the priority ordering:
// high-priority jobs are always served before normal-priority jobs, and
// ordering within a tier is FIFO (the committer's batch grouping may still
// reorder submissions by job type).
//
// All shared state — the deques and the registry — is serialized through a
// single mutex. Producers (concurrent transition requests) and the consumer
// (the batch committer) never share unsynchronized state.
type Queue struct {
	mu sync.Mutex

	high   []*commitment.Job
	normal []*commitment.Job

	// registry holds every job until it is discarded: queued and in-flight
	// jobs, terminal jobs within the grace period, and dead letters.
	registry map[kernel.UUID]*commitment.Job

	cfg   QueueConfig
	nudge chan struct{}
}

// NewQueue creates a bounded commitment queue.
func NewQueue(cfg QueueConfig) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Queue{
		registry: make(map[kernel.UUID]*commitment.Job),
		cfg:      cfg,
		nudge:    make(chan struct{}, 1),
	}, nil
}

// Nudge exposes the channel signalled whenever the queue depth reaches the
// batch threshold. The committer listens on it to drain without waiting for
// the next scheduled cycle. The channel carries at most one pending signal.
func (q *Queue) Nudge() <-chan struct{} {
	return q.nudge
}

// Enqueue accepts a queued job. Fails with ports.ErrQueueFull when the queue
// is at maximum depth: backpressure is surfaced to the caller, never hidden
// by unbounded growth.
func (q *Queue) Enqueue(job *commitment.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if job.Status() != commitment.StatusQueued {
		return fmt.Errorf("only queued jobs can be enqueued, job %s is %s", job.ID(), job.Status())
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.depthLocked() >= q.cfg.MaxDepth {
		return ports.ErrQueueFull
	}

	q.pushLocked(job)
	q.registry[job.ID()] = job

	if q.depthLocked() >= q.cfg.BatchThreshold {
		q.signalNudgeLocked()
	}

	return nil
}

// DequeueBatch removes up to max jobs, high tier first, marking each as
// submitting. It returns snapshots: the committer reports results back by
// job id so the live jobs are only ever touched under the queue lock.
// Expired terminal jobs are purged as a side effect of each drain.
func (q *Queue) DequeueBatch(max int) []*commitment.Job {
	if max <= 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.purgeExpiredLocked()

	batch := make([]*commitment.Job, 0, max)
	for len(batch) < max {
		job := q.popLocked()
		if job == nil {
			break
		}

		// The deque only ever holds queued jobs, so this cannot fail.
		if err := job.MarkSubmitting(); err != nil {
			continue
		}
		batch = append(batch, job.Clone())
	}

	return batch
}

// Depth returns the number of jobs currently waiting for submission.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depthLocked()
}

// Job returns a snapshot of the job with the given id.
func (q *Queue) Job(id kernel.UUID) (*commitment.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("jobId", id.String())
	}
	return job.Clone(), nil
}

// DeadLetters returns snapshots of all permanently failed jobs.
func (q *Queue) DeadLetters() []*commitment.Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	var dead []*commitment.Job
	for _, job := range q.registry {
		if job.Status() == commitment.StatusFailedPermanent {
			dead = append(dead, job.Clone())
		}
	}
	return dead
}

// Cancel removes a still-queued job, best-effort. Jobs already picked into a
// batch, awaiting a retry delay, or terminal are not cancellable.
func (q *Queue) Cancel(id kernel.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id.String())
	}

	if job.Status() != commitment.StatusQueued || !q.removeFromDequeLocked(id) {
		return ports.ErrJobNotCancellable
	}

	delete(q.registry, id)
	return nil
}

// MarkCommitted records a successful ledger commit for an in-flight job.
func (q *Queue) MarkCommitted(id kernel.UUID, ledgerRef string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id.String())
	}
	return job.MarkCommitted(ledgerRef)
}

// MarkFailedPermanent dead-letters an in-flight job.
func (q *Queue) MarkFailedPermanent(id kernel.UUID, cause error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id.String())
	}
	return job.MarkFailedPermanent(cause)
}

// HandleTransientFailure decides the fate of an in-flight job that failed
// transiently: back to queued if the retry budget allows another attempt,
// dead-lettered otherwise.
//
// A requeued job is NOT immediately eligible for dequeue; the committer
// restores it via Restore after the backoff delay elapses.
// Returns whether the job was requeued and its updated retry count.
func (q *Queue) HandleTransientFailure(id kernel.UUID, cause error, maxRetries int) (bool, int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return false, 0, errs.NewObjectNotFoundError("jobId", id.String())
	}

	if job.RetryCount()+1 > maxRetries {
		if err := job.MarkFailedPermanent(cause); err != nil {
			return false, job.RetryCount(), err
		}
		return false, job.RetryCount(), nil
	}

	if err := job.MarkRequeued(cause); err != nil {
		return false, job.RetryCount(), err
	}
	return true, job.RetryCount(), nil
}

// Restore puts a requeued job back into its priority tier after its backoff
// delay. No-op if the job was discarded or is not in the queued status.
func (q *Queue) Restore(id kernel.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id.String())
	}

	if job.Status() != commitment.StatusQueued {
		return fmt.Errorf("job %s is %s, not queued", id, job.Status())
	}

	if q.containsLocked(id) {
		return nil
	}

	q.pushLocked(job)
	q.signalNudgeLocked()
	return nil
}

// RequeueDeadLetter returns a permanently failed job to the queue with a
// fresh retry budget. This is the manual-intervention reconciliation path
// for jobs whose document state and ledger state have diverged.
func (q *Queue) RequeueDeadLetter(id kernel.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.registry[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id.String())
	}

	if q.depthLocked() >= q.cfg.MaxDepth {
		return ports.ErrQueueFull
	}

	if err := job.ResetForRequeue(); err != nil {
		return err
	}

	q.pushLocked(job)
	q.signalNudgeLocked()
	return nil
}

// depthLocked counts jobs waiting in the deques. Callers must hold the lock.
func (q *Queue) depthLocked() int {
	return len(q.high) + len(q.normal)
}

// pushLocked appends a job to the back of its priority tier.
func (q *Queue) pushLocked(job *commitment.Job) {
	if job.Priority() == commitment.PriorityHigh {
		q.high = append(q.high, job)
		return
	}
	q.normal = append(q.normal, job)
}

// popLocked removes the front job, serving the high tier first.
func (q *Queue) popLocked() *commitment.Job {
	if len(q.high) > 0 {
		job := q.high[0]
		q.high = q.high[1:]
		return job
	}
	if len(q.normal) > 0 {
		job := q.normal[0]
		q.normal = q.normal[1:]
		return job
	}
	return nil
}

// containsLocked reports whether the job id is present in either deque.
func (q *Queue) containsLocked(id kernel.UUID) bool {
	for _, job := range q.high {
		if job.ID().IsEqual(id) {
			return true
		}
	}
	for _, job := range q.normal {
		if job.ID().IsEqual(id) {
			return true
		}
	}
	return false
}

// removeFromDequeLocked removes the job id from its deque, reporting success.
func (q *Queue) removeFromDequeLocked(id kernel.UUID) bool {
	for i, job := range q.high {
		if job.ID().IsEqual(id) {
			q.high = append(q.high[:i], q.high[i+1:]...)
			return true
		}
	}
	for i, job := range q.normal {
		if job.ID().IsEqual(id) {
			q.normal = append(q.normal[:i], q.normal[i+1:]...)
			return true
		}
	}
	return false
}

// purgeExpiredLocked discards committed jobs whose grace period has elapsed.
// Dead letters are kept until requeued: they flag a divergence between the
// application state and the ledger and must stay visible to reconciliation.
func (q *Queue) purgeExpiredLocked() {
	cutoff := time.Now().UTC().Add(-q.cfg.TerminalGracePeriod)
	for id, job := range q.registry {
		if job.Status() != commitment.StatusCommitted {
			continue
		}
		if at := job.CompletedAt(); at != nil && at.Before(cutoff) {
			delete(q.registry, id)
		}
	}
}

// signalNudgeLocked posts a non-blocking wake-up for the committer.
func (q *Queue) signalNudgeLocked() {
	select {
	case q.nudge <- struct{}{}:
	default:
	}
}
