package services

import (
	"fmt"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/domain/model/document"
)

// SignatureField is the payload key carrying the signature artifact for
// transitions that require one.
const SignatureField = "signature"

// TransitionRule describes the workflow constraints attached to one state.
//
// The rule plays two parts depending on which side of a transition the state
// is on: AllowedNextStates and IsTerminal apply when the state is the source
// of a transition; RequiredRoles, RequiredFields, RequiresSignature,
// CommitJobType, and CommitPriority apply when the state is the target.
type TransitionRule struct {
	// AllowedNextStates are the states reachable from this state.
	// Empty for terminal states.
	AllowedNextStates []document.State

	// RequiredRoles are the roles permitted to drive a document into this
	// state. Admins bypass this check.
	RequiredRoles []document.Role

	// RequiredFields are the payload fields that must be present and
	// non-empty when entering this state.
	RequiredFields []string

	// RequiresSignature indicates entering this state needs a signature
	// artifact in the payload.
	RequiresSignature bool

	// IsTerminal indicates no transitions leave this state.
	IsTerminal bool

	// CommitJobType classifies the ledger job created when a document
	// enters this state.
	CommitJobType commitment.JobType

	// CommitPriority is the queue priority of that ledger job.
	// Terminal-adjacent states (delivery, settlement) commit at high priority.
	CommitPriority commitment.Priority
}

// RuleTable is the static transition graph for the bill of lading workflow.
// It is loaded once at startup and validated so that every state referenced
// as a transition target exists as a rule key (no dangling transitions) and
// terminal states have no outgoing transitions.
//
// The table is immutable after construction and safe for concurrent use.
type RuleTable struct {
	rules map[document.State]TransitionRule
}

// NewRuleTable builds the default bill of lading workflow and validates it.
func NewRuleTable() (*RuleTable, error) {
	return newRuleTable(defaultRules())
}

// newRuleTable validates an arbitrary rule set. Split from NewRuleTable so
// tests can exercise the load-time validation with broken graphs.
func newRuleTable(rules map[document.State]TransitionRule) (*RuleTable, error) {
	table := &RuleTable{rules: rules}
	if err := table.validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// defaultRules returns the production workflow graph.
func defaultRules() map[document.State]TransitionRule {
	return map[document.State]TransitionRule{
		document.Pending: {
			AllowedNextStates: []document.State{document.Approved, document.Rejected},
			RequiredRoles:     []document.Role{document.RoleShipper},
			CommitJobType:     commitment.JobTypeStatusTransition,
			CommitPriority:    commitment.PriorityNormal,
		},
		document.Approved: {
			AllowedNextStates: []document.State{document.Shipped, document.Rejected},
			RequiredRoles:     []document.Role{document.RoleShipper},
			RequiredFields:    []string{"consignee", "cargoDescription"},
			RequiresSignature: true,
			CommitJobType:     commitment.JobTypeStatusTransition,
			CommitPriority:    commitment.PriorityNormal,
		},
		document.Shipped: {
			AllowedNextStates: []document.State{document.InTransit},
			RequiredRoles:     []document.Role{document.RoleCarrier},
			RequiredFields:    []string{"vesselName", "portOfLoading"},
			CommitJobType:     commitment.JobTypeStatusTransition,
			CommitPriority:    commitment.PriorityNormal,
		},
		document.InTransit: {
			AllowedNextStates: []document.State{document.Delivered},
			RequiredRoles:     []document.Role{document.RoleCarrier},
			CommitJobType:     commitment.JobTypeStatusTransition,
			CommitPriority:    commitment.PriorityNormal,
		},
		document.Delivered: {
			AllowedNextStates: []document.State{document.Settled},
			RequiredRoles:     []document.Role{document.RoleCarrier, document.RoleConsignee},
			RequiredFields:    []string{"deliveryLocation"},
			RequiresSignature: true,
			CommitJobType:     commitment.JobTypeDeliveryConfirmation,
			CommitPriority:    commitment.PriorityHigh,
		},
		document.Settled: {
			RequiredRoles:     []document.Role{document.RoleConsignee},
			RequiresSignature: true,
			IsTerminal:        true,
			CommitJobType:     commitment.JobTypeSettlement,
			CommitPriority:    commitment.PriorityHigh,
		},
		document.Rejected: {
			RequiredRoles:  []document.Role{document.RoleShipper, document.RoleConsignee},
			RequiredFields: []string{"rejectionReason"},
			IsTerminal:     true,
			CommitJobType:  commitment.JobTypeStatusTransition,
			CommitPriority: commitment.PriorityNormal,
		},
	}
}

// validate enforces the structural invariants of the graph at load time.
func (t *RuleTable) validate() error {
	for state, rule := range t.rules {
		if err := state.Validate(); err != nil {
			return fmt.Errorf("rule table key %d: %w", state, err)
		}

		if rule.IsTerminal && len(rule.AllowedNextStates) > 0 {
			return fmt.Errorf("terminal state %s must have no outgoing transitions", state)
		}

		if !rule.IsTerminal && len(rule.AllowedNextStates) == 0 {
			return fmt.Errorf("non-terminal state %s must have outgoing transitions", state)
		}

		for _, target := range rule.AllowedNextStates {
			if _, ok := t.rules[target]; !ok {
				return fmt.Errorf("state %s references target %s with no rule entry", state, target)
			}
		}

		if err := rule.CommitJobType.Validate(); err != nil {
			return fmt.Errorf("state %s: %w", state, err)
		}

		if err := rule.CommitPriority.Validate(); err != nil {
			return fmt.Errorf("state %s: %w", state, err)
		}
	}

	return nil
}

// RuleFor returns the rule for a state and whether one exists.
func (t *RuleTable) RuleFor(state document.State) (TransitionRule, bool) {
	rule, ok := t.rules[state]
	return rule, ok
}

// IsTransitionAllowed reports whether target is reachable from current.
func (t *RuleTable) IsTransitionAllowed(current, target document.State) bool {
	rule, ok := t.rules[current]
	if !ok {
		return false
	}

	for _, next := range rule.AllowedNextStates {
		if next == target {
			return true
		}
	}
	return false
}

// States returns every state the table defines. The order is unspecified.
func (t *RuleTable) States() []document.State {
	states := make([]document.State, 0, len(t.rules))
	for state := range t.rules {
		states = append(states, state)
	}
	return states
}
