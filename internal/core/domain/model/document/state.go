package document

import (
	"fmt"

	"lading/internal/pkg/errs"
)

// State represents the lifecycle stage of a bill of lading.
// It is a closed enum; which transitions between states are legal is defined
// by the services.RuleTable, not by the State values themselves.
//
// Lifecycle:
//
//	Pending ──> Approved ──> Shipped ──> InTransit ──> Delivered ──> Settled
//	   │            │
//	   └────────────┴──> Rejected
//
// Settled and Rejected are terminal states.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Pending is the initial state of a freshly issued bill of lading,
	// awaiting shipper approval.
	Pending

	// Approved indicates the shipper has signed off on the document contents.
	Approved

	// Shipped indicates the cargo has been loaded and the carrier has taken custody.
	Shipped

	// InTransit indicates the shipment is underway.
	InTransit

	// Delivered indicates the consignee has taken custody of the cargo.
	Delivered

	// Settled indicates payment and custody are finalized. Terminal.
	Settled

	// Rejected indicates the document was refused before shipment. Terminal.
	Rejected
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Approved:  "Approved",
		Shipped:   "Shipped",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Settled:   "Settled",
		Rejected:  "Rejected",
	}
}

// getValidStateStrings returns a map of only valid State values.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Pending:   "Pending",
		Approved:  "Approved",
		Shipped:   "Shipped",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Settled:   "Settled",
		Rejected:  "Rejected",
	}
}

// StateFromString parses a state name as produced by String.
// Returns an error for unrecognized names, including "Unknown".
func StateFromString(s string) (State, error) {
	for state, str := range getValidStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// AllStates returns every valid state. The order is unspecified.
func AllStates() []State {
	states := make([]State, 0, len(getValidStateStrings()))
	for s := range getValidStateStrings() {
		states = append(states, s)
	}
	return states
}

// Validate checks if the State value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// Implements fmt.Stringer and is safe to call on any State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
