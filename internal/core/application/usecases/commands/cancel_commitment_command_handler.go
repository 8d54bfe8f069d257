package commands

import (
	"context"

	"lading/internal/core/ports"
)

// CancelCommitmentCommandHandler cancels still-queued commitment jobs.
type CancelCommitmentCommandHandler struct {
	queue ports.CommitmentQueue
}

// NewCancelCommitmentCommandHandler creates the cancellation handler.
func NewCancelCommitmentCommandHandler(queue ports.CommitmentQueue) CancelCommitmentCommandHandler {
	return CancelCommitmentCommandHandler{queue: queue}
}

// Handle processes one cancellation request. Returns
// ports.ErrJobNotCancellable when the job is already in flight or terminal.
func (h CancelCommitmentCommandHandler) Handle(ctx context.Context, cmd CancelCommitmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.queue.Cancel(cmd.JobID())
}
