package commands

import (
	"errors"

	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/guard"
)

var ErrRequeueDeadLetterCommandIsNotConstructed = errors.New(
	"RequeueDeadLetterCommand must be created via NewRequeueDeadLetterCommand constructor",
)

// RequeueDeadLetterCommand requests that a permanently failed commitment job
// be returned to the queue with a fresh retry budget. This is the
// manual-intervention path for reconciling a document whose durable state
// has advanced without a matching ledger record.
type RequeueDeadLetterCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequeueDeadLetterCommand creates a validated requeue request.
func NewRequeueDeadLetterCommand(jobID kernel.UUID) (RequeueDeadLetterCommand, error) {
	cmd := RequeueDeadLetterCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return RequeueDeadLetterCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequeueDeadLetterCommand) Validate() error {
	return c.guard.Validate(ErrRequeueDeadLetterCommandIsNotConstructed)
}

// JobID returns the identifier of the dead-lettered job.
func (c RequeueDeadLetterCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *RequeueDeadLetterCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
