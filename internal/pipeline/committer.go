package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/ports"
	"lading/internal/pkg/errs"
)

// CommitterConfig tunes one drain cycle of the batch committer.
type CommitterConfig struct {
	// MaxBatchSize is the maximum number of jobs drained per cycle.
	MaxBatchSize int

	// MaxInFlight caps the number of concurrently submitting batches,
	// bounding load on the ledger regardless of queue depth.
	MaxInFlight int

	// MaxRetries is the transient-failure budget per job.
	MaxRetries int

	// BaseRetryDelay scales the re-enqueue backoff: a job that has failed
	// n times waits BaseRetryDelay*n before becoming eligible again.
	BaseRetryDelay time.Duration
}

// Validate checks the configuration is usable.
func (c CommitterConfig) Validate() error {
	if c.MaxBatchSize <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxBatchSize",
			fmt.Errorf("%d is not greater than 0", c.MaxBatchSize))
	}
	if c.MaxInFlight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxInFlight",
			fmt.Errorf("%d is not greater than 0", c.MaxInFlight))
	}
	if c.MaxRetries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxRetries",
			fmt.Errorf("%d is negative", c.MaxRetries))
	}
	if c.BaseRetryDelay <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("baseRetryDelay",
			fmt.Errorf("%s is not greater than 0", c.BaseRetryDelay))
	}
	return nil
}

// BatchCommitter drains the commitment queue and submits jobs to the ledger,
// entirely off the request path. Each cycle dequeues up to MaxBatchSize jobs
// respecting priority, groups them by job type, and submits the groups with
// at most MaxInFlight batches in flight at once.
//
// Per-job results are independent: one job's transient failure and backoff
// never delays the rest of its batch (no head-of-line blocking). Transient
// failures re-enqueue after BaseRetryDelay*retryCount until the retry budget
// is exhausted, at which point the job is dead-lettered. A dead-lettered job
// means the document has advanced but the ledger has not; the divergence is
// kept visible through the queue's dead-letter registry.
type BatchCommitter struct {
	queue  *Queue
	ledger ports.LedgerClient
	cfg    CommitterConfig
	logger *slog.Logger
}

// NewBatchCommitter creates a committer draining the given queue into the ledger.
func NewBatchCommitter(
	queue *Queue,
	ledger ports.LedgerClient,
	cfg CommitterConfig,
	logger *slog.Logger,
) (*BatchCommitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &BatchCommitter{
		queue:  queue,
		ledger: ledger,
		cfg:    cfg,
		logger: logger.With("component", "batch_committer"),
	}, nil
}

// RunCycle executes one drain cycle. Returns the number of jobs picked.
// Safe to call from both the fixed-interval schedule and the threshold nudge;
// an empty queue makes it a cheap no-op.
func (c *BatchCommitter) RunCycle(ctx context.Context) int {
	batch := c.queue.DequeueBatch(c.cfg.MaxBatchSize)
	if len(batch) == 0 {
		return 0
	}

	groups := groupByType(batch)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxInFlight)

	for jobType, jobs := range groups {
		g.Go(func() error {
			c.submitGroup(groupCtx, jobType, jobs)
			return nil
		})
	}

	// Submission errors are handled per job; the group only propagates
	// context cancellation.
	_ = g.Wait()

	return len(batch)
}

// submitGroup submits one homogeneous batch, job by job, recording each
// result against the queue's registry.
func (c *BatchCommitter) submitGroup(ctx context.Context, jobType commitment.JobType, jobs []*commitment.Job) {
	for _, job := range jobs {
		result, err := c.ledger.Submit(ctx, ports.LedgerSubmission{
			JobType:        jobType,
			Payload:        job.Payload(),
			IdempotencyKey: job.IdempotencyKey(),
		})
		if err != nil {
			c.handleFailure(ctx, job, err)
			continue
		}

		if markErr := c.queue.MarkCommitted(job.ID(), result.LedgerRef); markErr != nil {
			c.logger.ErrorContext(ctx, "Failed to record ledger commit",
				"job_id", job.ID().String(), "error", markErr)
			continue
		}

		c.logger.InfoContext(ctx, "Job committed to ledger",
			"job_id", job.ID().String(),
			"document_id", job.DocumentID().String(),
			"ledger_ref", result.LedgerRef,
			"retries", job.RetryCount())
	}
}

// handleFailure routes a submission error: transient failures consume retry
// budget and re-enqueue after backoff, anything else dead-letters immediately.
func (c *BatchCommitter) handleFailure(ctx context.Context, job *commitment.Job, cause error) {
	if !errors.Is(cause, ports.ErrLedgerTransient) {
		if err := c.queue.MarkFailedPermanent(job.ID(), cause); err != nil {
			c.logger.ErrorContext(ctx, "Failed to dead-letter job",
				"job_id", job.ID().String(), "error", err)
			return
		}
		c.logger.ErrorContext(ctx, "Job permanently failed, ledger diverged from store",
			"job_id", job.ID().String(),
			"document_id", job.DocumentID().String(),
			"error", cause)
		return
	}

	requeued, retryCount, err := c.queue.HandleTransientFailure(job.ID(), cause, c.cfg.MaxRetries)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to record transient failure",
			"job_id", job.ID().String(), "error", err)
		return
	}

	if !requeued {
		c.logger.ErrorContext(ctx, "Job retries exhausted, ledger diverged from store",
			"job_id", job.ID().String(),
			"document_id", job.DocumentID().String(),
			"retries", retryCount,
			"error", cause)
		return
	}

	delay := c.cfg.BaseRetryDelay * time.Duration(retryCount)
	c.logger.WarnContext(ctx, "Job failed transiently, retrying after backoff",
		"job_id", job.ID().String(),
		"retry", retryCount,
		"delay", delay.String(),
		"error", cause)

	jobID := job.ID()
	time.AfterFunc(delay, func() {
		if restoreErr := c.queue.Restore(jobID); restoreErr != nil {
			c.logger.Error("Failed to restore job after backoff",
				"job_id", jobID.String(), "error", restoreErr)
		}
	})
}

// groupByType partitions a batch into homogeneous submission groups.
func groupByType(batch []*commitment.Job) map[commitment.JobType][]*commitment.Job {
	groups := make(map[commitment.JobType][]*commitment.Job)
	for _, job := range batch {
		groups[job.Type()] = append(groups[job.Type()], job)
	}
	return groups
}
