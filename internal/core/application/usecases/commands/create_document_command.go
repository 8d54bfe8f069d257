// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// conditional persistence, and asynchronous ledger enqueue.
package commands

import (
	"errors"

	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/guard"
)

var (
	ErrCreateDocumentCommandIsNotConstructed = errors.New(
		"CreateDocumentCommand must be created via NewCreateDocumentCommand constructor",
	)
	ErrIssuerIsRequired = errors.New("issuer is required")
)

// CreateDocumentCommand represents a request to issue a new bill of lading.
// The document starts its lifecycle in the Pending state at version 1.
type CreateDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	issuedBy   string

	guard guard.ConstructorGuard
}

// NewCreateDocumentCommand creates a command to issue a new bill of lading.
// Validates that the document ID is valid and the issuer is identified.
func NewCreateDocumentCommand(documentID kernel.UUID, issuedBy string) (CreateDocumentCommand, error) {
	cmd := CreateDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setIssuedBy(issuedBy),
	); err != nil {
		return CreateDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDocumentCommand) Validate() error {
	return c.guard.Validate(ErrCreateDocumentCommandIsNotConstructed)
}

// DocumentID returns the unique identifier for the new bill of lading.
func (c CreateDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// IssuedBy returns the actor issuing the document.
func (c CreateDocumentCommand) IssuedBy() string {
	return c.issuedBy
}

func (c *CreateDocumentCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *CreateDocumentCommand) setIssuedBy(issuedBy string) error {
	if issuedBy == "" {
		return ErrIssuerIsRequired
	}

	c.issuedBy = issuedBy
	return nil
}
