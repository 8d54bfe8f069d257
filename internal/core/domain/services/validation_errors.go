package services

import (
	"errors"
	"fmt"
	"strings"

	"lading/internal/core/domain/model/document"
)

// Sentinel errors for the validation failure taxonomy. Callers classify
// rejections with errors.Is; none of these is ever retried and none implies
// any state change.
var (
	ErrIllegalTransition      = errors.New("illegal transition")
	ErrInsufficientPermission = errors.New("insufficient permission")
	ErrMissingFields          = errors.New("missing required fields")
	ErrMissingSignature       = errors.New("missing signature")
)

// IllegalTransitionError indicates the target state is not reachable from the
// current state in the workflow graph.
type IllegalTransitionError struct {
	From document.State
	To   document.State
}

// NewIllegalTransitionError creates an IllegalTransitionError for a rejected edge.
func NewIllegalTransitionError(from, to document.State) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// InsufficientPermissionError indicates none of the actor's roles is
// permitted to drive the document into the target state.
type InsufficientPermissionError struct {
	Target        document.State
	ActorRoles    []document.Role
	RequiredRoles []document.Role
}

// NewInsufficientPermissionError creates an InsufficientPermissionError for a rejected actor.
func NewInsufficientPermissionError(target document.State, actorRoles, requiredRoles []document.Role) *InsufficientPermissionError {
	return &InsufficientPermissionError{
		Target:        target,
		ActorRoles:    actorRoles,
		RequiredRoles: requiredRoles,
	}
}

func (e *InsufficientPermissionError) Error() string {
	return fmt.Sprintf("%s: transition to %s requires one of %s, actor has %s",
		ErrInsufficientPermission, e.Target, roleNames(e.RequiredRoles), roleNames(e.ActorRoles))
}

func (e *InsufficientPermissionError) Unwrap() error {
	return ErrInsufficientPermission
}

// MissingFieldsError indicates the payload lacks fields the target state requires.
type MissingFieldsError struct {
	Target document.State
	Fields []string
}

// NewMissingFieldsError creates a MissingFieldsError listing the absent fields.
func NewMissingFieldsError(target document.State, fields []string) *MissingFieldsError {
	return &MissingFieldsError{Target: target, Fields: fields}
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: transition to %s requires fields [%s]",
		ErrMissingFields, e.Target, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}

// MissingSignatureError indicates the payload carries no signature artifact
// for a transition that requires one.
type MissingSignatureError struct {
	Target document.State
}

// NewMissingSignatureError creates a MissingSignatureError for the target state.
func NewMissingSignatureError(target document.State) *MissingSignatureError {
	return &MissingSignatureError{Target: target}
}

func (e *MissingSignatureError) Error() string {
	return fmt.Sprintf("%s: transition to %s requires a signature", ErrMissingSignature, e.Target)
}

func (e *MissingSignatureError) Unwrap() error {
	return ErrMissingSignature
}

func roleNames(roles []document.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
