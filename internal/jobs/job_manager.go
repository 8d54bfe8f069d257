package jobs

import (
	"fmt"
	"log/slog"

	"lading/internal/core/application/usecases/queries"
	"lading/internal/pipeline"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ledgerCommitJob        *LedgerCommitJob
	reconciliationSweepJob *ReconciliationSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	committer *pipeline.BatchCommitter,
	queue *pipeline.Queue,
	deadLettersHandler queries.GetDeadLettersQueryHandler,
	commitSchedule string,
	sweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		ledgerCommitJob:        NewLedgerCommitJob(committer, queue, commitSchedule, logger),
		reconciliationSweepJob: NewReconciliationSweepJob(deadLettersHandler, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.ledgerCommitJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger commit job: %w", err)
	}

	if err := jm.reconciliationSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.ledgerCommitJob.Stop()
		return fmt.Errorf("failed to start reconciliation sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationSweepJob.Stop()
	jm.ledgerCommitJob.Stop()
}
