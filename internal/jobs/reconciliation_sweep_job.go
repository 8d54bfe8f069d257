package jobs

import (
	"context"
	"log/slog"

	"lading/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ReconciliationSweepJob periodically reports dead-lettered commitment jobs.
// It only observes; requeueing a dead letter is an explicit operator action
// through the requeue endpoint.
type ReconciliationSweepJob struct {
	handler  queries.GetDeadLettersQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationSweepJob creates the sweep job.
func NewReconciliationSweepJob(
	handler queries.GetDeadLettersQueryHandler,
	schedule string,
	logger *slog.Logger,
) *ReconciliationSweepJob {
	return &ReconciliationSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reconciliation_sweep_job"),
	}
}

// Start begins the periodic sweep.
func (j *ReconciliationSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		deadLetters, err := j.handler.Handle(ctx, queries.NewGetDeadLettersQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation sweep failed", "error", err)
			return
		}

		if len(deadLetters) == 0 {
			return
		}

		j.logger.WarnContext(ctx, "Dead-lettered commitment jobs awaiting reconciliation",
			"count", len(deadLetters))
		for _, job := range deadLetters {
			j.logger.WarnContext(ctx, "Dead letter",
				"job_id", job.ID.String(),
				"document_id", job.DocumentID.String(),
				"document_version", job.DocumentVersion,
				"job_type", string(job.JobType),
				"retry_count", job.RetryCount,
				"last_error", job.LastError)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *ReconciliationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation sweep job stopped")
}
