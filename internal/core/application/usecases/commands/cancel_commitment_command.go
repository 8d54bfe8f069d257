package commands

import (
	"errors"

	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/guard"
)

var ErrCancelCommitmentCommandIsNotConstructed = errors.New(
	"CancelCommitmentCommand must be created via NewCancelCommitmentCommand constructor",
)

// CancelCommitmentCommand requests best-effort cancellation of a queued
// commitment job. Once a batch has picked the job, cancellation is refused
// and the commit runs to completion or retry exhaustion.
type CancelCommitmentCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelCommitmentCommand creates a validated cancellation request.
func NewCancelCommitmentCommand(jobID kernel.UUID) (CancelCommitmentCommand, error) {
	cmd := CancelCommitmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return CancelCommitmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelCommitmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelCommitmentCommandIsNotConstructed)
}

// JobID returns the identifier of the job to cancel.
func (c CancelCommitmentCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *CancelCommitmentCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
