package jobs

import (
	"context"
	"log/slog"
	"sync"

	"lading/internal/pipeline"

	"github.com/robfig/cron/v3"
)

// LedgerCommitJob drives the batch committer. Two triggers share one
// committer: a fixed cron interval so queued jobs never wait longer than the
// interval, and the queue's nudge channel so a full batch is submitted as
// soon as the threshold is crossed.
type LedgerCommitJob struct {
	committer *pipeline.BatchCommitter
	queue     *pipeline.Queue
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger

	cancelNudge context.CancelFunc
	wg          sync.WaitGroup
}

// NewLedgerCommitJob creates the commit job. The schedule is a six-field
// cron expression, e.g. "*/5 * * * * *" for every five seconds.
func NewLedgerCommitJob(
	committer *pipeline.BatchCommitter,
	queue *pipeline.Queue,
	schedule string,
	logger *slog.Logger,
) *LedgerCommitJob {
	return &LedgerCommitJob{
		committer: committer,
		queue:     queue,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "ledger_commit_job"),
	}
}

// Start begins the periodic commit cycle and the nudge listener.
func (j *LedgerCommitJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.runCycle(context.Background())
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancelNudge = cancel

	j.wg.Add(1)
	go j.listenNudge(ctx)

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger commit job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and the nudge listener. Waits for the listener
// goroutine to exit; an in-flight commit cycle runs to completion.
func (j *LedgerCommitJob) Stop() {
	j.cron.Stop()
	if j.cancelNudge != nil {
		j.cancelNudge()
	}
	j.wg.Wait()
	j.logger.InfoContext(context.Background(), "Ledger commit job stopped")
}

func (j *LedgerCommitJob) listenNudge(ctx context.Context) {
	defer j.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.queue.Nudge():
			j.runCycle(ctx)
		}
	}
}

func (j *LedgerCommitJob) runCycle(ctx context.Context) {
	submitted := j.committer.RunCycle(ctx)
	if submitted > 0 {
		j.logger.InfoContext(ctx, "Commit cycle finished", "jobs_submitted", submitted)
	}
}
