package commitment

import (
	"fmt"

	"lading/internal/pkg/errs"
)

// Priority determines the service order of jobs in the commitment queue.
// High-priority jobs are always dequeued before normal-priority jobs;
// within a tier, ordering is loosely FIFO (batch grouping may reorder by job type).
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityNormal is the default priority for most state transitions.
	PriorityNormal

	// PriorityHigh is assigned to transitions into terminal-adjacent states
	// such as delivery and settlement, which must reach the ledger promptly.
	PriorityHigh
)

// getPriorityStrings returns a map of Priority values to their string representations.
func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityNormal:  "Normal",
		PriorityHigh:    "High",
	}
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	if p != PriorityNormal && p != PriorityHigh {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the human-readable name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
