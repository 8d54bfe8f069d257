// Package jobs provides scheduled background tasks for the commitment
// pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the asynchronous half of the status transition engine.
//
// # Available Jobs
//
// 1. LedgerCommitJob - Drains the commitment queue in batches and submits
// them to the ledger. Triggered on a fixed schedule and additionally by the
// queue's nudge channel when a full batch accumulates.
// 2. ReconciliationSweepJob - Periodically logs dead-lettered jobs so
// operators notice store/ledger divergence and can requeue them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(committer, queue, deadLettersHandler,
//		commitSchedule, sweepSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Commit cycle failures are handled per job inside the committer: jobs
// are retried with linear backoff or dead-lettered, never lost.
// - Sweep job failures are logged; the sweep never mutates queue state.
// - Failed job starts will stop any already running jobs.
package jobs
