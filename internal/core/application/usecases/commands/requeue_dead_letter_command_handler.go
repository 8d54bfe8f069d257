package commands

import (
	"context"
	"log/slog"

	"lading/internal/core/ports"
)

// RequeueDeadLetterCommandHandler returns dead-lettered commitment jobs to
// the queue. Part of the explicit reconciliation process for store/ledger
// divergence; nothing requeues dead letters automatically.
type RequeueDeadLetterCommandHandler struct {
	queue  ports.CommitmentQueue
	logger *slog.Logger
}

// NewRequeueDeadLetterCommandHandler creates the requeue handler.
func NewRequeueDeadLetterCommandHandler(
	queue ports.CommitmentQueue,
	logger *slog.Logger,
) RequeueDeadLetterCommandHandler {
	return RequeueDeadLetterCommandHandler{
		queue:  queue,
		logger: logger.With("component", "requeue_dead_letter_handler"),
	}
}

// Handle processes one requeue request.
func (h RequeueDeadLetterCommandHandler) Handle(ctx context.Context, cmd RequeueDeadLetterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.queue.RequeueDeadLetter(cmd.JobID()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Dead-lettered job requeued for ledger commit",
		"job_id", cmd.JobID().String())
	return nil
}
