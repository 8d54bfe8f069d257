package commands

import (
	"errors"
	"maps"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/guard"
)

var (
	ErrRequestTransitionCommandIsNotConstructed = errors.New(
		"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
	)
	ErrActorIsRequired     = errors.New("actor is required")
	ErrActorRolesRequired  = errors.New("at least one actor role is required")
	ErrActorRoleIsInvalid  = errors.New("actor role is invalid")
	ErrTargetStateRequired = errors.New("target state is required")
)

// RequestTransitionCommand represents a request to move a bill of lading to
// a new lifecycle state on behalf of an identified actor.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(
//	    documentID,
//	    document.Approved,
//	    "alice@shipper.example",
//	    []document.Role{document.RoleShipper},
//	    map[string]any{"consignee": "ACME", "cargoDescription": "20 crates", "signature": sig},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	documentID  kernel.UUID
	targetState document.State
	actor       string
	actorRoles  []document.Role
	payload     map[string]any

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a validated transition request.
// The payload is copied; callers may reuse their map afterwards.
func NewRequestTransitionCommand(
	documentID kernel.UUID,
	targetState document.State,
	actor string,
	actorRoles []document.Role,
	payload map[string]any,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setTargetState(targetState),
		cmd.setActor(actor),
		cmd.setActorRoles(actorRoles),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	cmd.payload = maps.Clone(payload)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// DocumentID returns the identifier of the bill of lading to transition.
func (c RequestTransitionCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// TargetState returns the requested lifecycle state.
func (c RequestTransitionCommand) TargetState() document.State {
	return c.targetState
}

// Actor returns the identity of the requesting actor.
func (c RequestTransitionCommand) Actor() string {
	return c.actor
}

// ActorRoles returns the roles the actor holds.
func (c RequestTransitionCommand) ActorRoles() []document.Role {
	return c.actorRoles
}

// Payload returns the transition payload (required fields, signature artifact).
func (c RequestTransitionCommand) Payload() map[string]any {
	return c.payload
}

func (c *RequestTransitionCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *RequestTransitionCommand) setTargetState(target document.State) error {
	if err := target.Validate(); err != nil {
		return errors.Join(ErrTargetStateRequired, err)
	}

	c.targetState = target
	return nil
}

func (c *RequestTransitionCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *RequestTransitionCommand) setActorRoles(roles []document.Role) error {
	if len(roles) == 0 {
		return ErrActorRolesRequired
	}

	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return errors.Join(ErrActorRoleIsInvalid, err)
		}
	}

	c.actorRoles = append([]document.Role(nil), roles...)
	return nil
}
