package queries

import (
	"errors"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/errs"
	"lading/internal/pkg/guard"
)

var ErrGetAvailableTransitionsQueryIsNotConstructed = errors.New(
	"GetAvailableTransitionsQuery must be created via NewGetAvailableTransitionsQuery constructor",
)

// GetAvailableTransitionsQuery asks which target states the given actor may
// request for a bill of lading in its current state.
type GetAvailableTransitionsQuery struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	actorRoles []document.Role

	guard guard.ConstructorGuard
}

// NewGetAvailableTransitionsQuery creates a validated transitions query.
func NewGetAvailableTransitionsQuery(
	documentID kernel.UUID,
	actorRoles []document.Role,
) (GetAvailableTransitionsQuery, error) {
	query := GetAvailableTransitionsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := documentID.Validate(); err != nil {
		return GetAvailableTransitionsQuery{}, err
	}
	query.documentID = documentID

	if err := query.setActorRoles(actorRoles); err != nil {
		return GetAvailableTransitionsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableTransitionsQueryIsNotConstructed)
}

// DocumentID returns the identifier of the bill of lading.
func (q GetAvailableTransitionsQuery) DocumentID() kernel.UUID {
	return q.documentID
}

// ActorRoles returns the roles held by the requesting actor.
func (q GetAvailableTransitionsQuery) ActorRoles() []document.Role {
	roles := make([]document.Role, len(q.actorRoles))
	copy(roles, q.actorRoles)
	return roles
}

func (q *GetAvailableTransitionsQuery) setActorRoles(actorRoles []document.Role) error {
	if len(actorRoles) == 0 {
		return errs.NewValueIsRequiredError("actorRoles")
	}

	for _, role := range actorRoles {
		if err := role.Validate(); err != nil {
			return err
		}
	}

	q.actorRoles = make([]document.Role, len(actorRoles))
	copy(q.actorRoles, actorRoles)
	return nil
}

// GetAvailableTransitionsQueryResponse lists the reachable target states.
// Reachable means the state graph allows the edge and at least one of the
// actor's roles is permitted to request it. Field and signature requirements
// are checked only at transition time.
type GetAvailableTransitionsQueryResponse struct {
	DocumentID   kernel.UUID
	CurrentState document.State
	Transitions  []document.State
}
