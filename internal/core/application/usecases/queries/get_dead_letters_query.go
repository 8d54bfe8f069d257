package queries

import (
	"errors"

	"lading/internal/pkg/guard"
)

var ErrGetDeadLettersQueryIsNotConstructed = errors.New(
	"GetDeadLettersQuery must be created via NewGetDeadLettersQuery constructor",
)

// GetDeadLettersQuery lists permanently failed commitment jobs awaiting
// manual reconciliation. Parameterless, fetches every dead letter.
type GetDeadLettersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeadLettersQuery creates a dead letter listing query.
func NewGetDeadLettersQuery() GetDeadLettersQuery {
	return GetDeadLettersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeadLettersQuery) Validate() error {
	return q.guard.Validate(ErrGetDeadLettersQueryIsNotConstructed)
}
