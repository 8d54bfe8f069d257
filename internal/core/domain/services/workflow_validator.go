package services

import (
	"lading/internal/core/domain/model/document"
)

// WorkflowValidator is a domain service that decides whether a requested
// state transition is legal. It is a pure function over the static rule
// table: no side effects, no I/O, deterministic for a given input — which is
// what makes the transition graph exhaustively unit-testable.
//
// Checks are applied in order:
//  1. graph legality (target reachable from current)
//  2. role permission (admin bypasses)
//  3. required payload fields
//  4. signature requirement
//
// Example usage:
//
//	table, _ := services.NewRuleTable()
//	validator := services.NewWorkflowValidator(table)
//
//	err := validator.Validate(document.Pending, document.Approved, actorRoles, payload)
//	if errors.Is(err, services.ErrMissingSignature) {
//	    // reject synchronously, nothing has changed
//	}
type WorkflowValidator struct {
	table *RuleTable
}

// NewWorkflowValidator creates a validator over the given rule table.
func NewWorkflowValidator(table *RuleTable) WorkflowValidator {
	return WorkflowValidator{table: table}
}

// Validate approves or rejects a requested transition.
// Returns nil when the transition may proceed, or one of the typed
// validation errors (IllegalTransition, InsufficientPermission,
// MissingFields, MissingSignature).
func (v WorkflowValidator) Validate(
	current document.State,
	target document.State,
	actorRoles []document.Role,
	payload map[string]any,
) error {
	if !v.table.IsTransitionAllowed(current, target) {
		return NewIllegalTransitionError(current, target)
	}

	// The target rule is guaranteed to exist once the edge is legal:
	// load-time validation rejects dangling transition targets.
	rule, _ := v.table.RuleFor(target)

	if err := v.validateRoles(target, rule, actorRoles); err != nil {
		return err
	}

	if missing := missingFields(rule.RequiredFields, payload); len(missing) > 0 {
		return NewMissingFieldsError(target, missing)
	}

	if rule.RequiresSignature && !hasField(payload, SignatureField) {
		return NewMissingSignatureError(target)
	}

	return nil
}

// AvailableTransitions returns the states reachable from current that the
// actor's roles permit. Field and signature requirements are not considered;
// they depend on the payload of an actual request.
func (v WorkflowValidator) AvailableTransitions(
	current document.State,
	actorRoles []document.Role,
) []document.State {
	rule, ok := v.table.RuleFor(current)
	if !ok {
		return nil
	}

	available := make([]document.State, 0, len(rule.AllowedNextStates))
	for _, target := range rule.AllowedNextStates {
		targetRule, ok := v.table.RuleFor(target)
		if !ok {
			continue
		}
		if roleIntersects(actorRoles, targetRule.RequiredRoles) || isAdmin(actorRoles) {
			available = append(available, target)
		}
	}
	return available
}

func (v WorkflowValidator) validateRoles(target document.State, rule TransitionRule, actorRoles []document.Role) error {
	if isAdmin(actorRoles) {
		return nil
	}

	if !roleIntersects(actorRoles, rule.RequiredRoles) {
		return NewInsufficientPermissionError(target, actorRoles, rule.RequiredRoles)
	}
	return nil
}

func isAdmin(roles []document.Role) bool {
	for _, r := range roles {
		if r == document.RoleAdmin {
			return true
		}
	}
	return false
}

func roleIntersects(actorRoles, requiredRoles []document.Role) bool {
	for _, actor := range actorRoles {
		for _, required := range requiredRoles {
			if actor == required {
				return true
			}
		}
	}
	return false
}

// missingFields returns the required fields absent or empty in the payload.
func missingFields(required []string, payload map[string]any) []string {
	var missing []string
	for _, field := range required {
		if !hasField(payload, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// hasField reports whether the payload carries a non-empty value for the key.
func hasField(payload map[string]any, key string) bool {
	value, ok := payload[key]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString && s == "" {
		return false
	}
	return true
}
