// Package services provides domain services for the bill of lading workflow.
//
// The package includes:
//   - RuleTable: the static transition graph (states, legal transitions,
//     required roles, required fields, signature requirements, terminal
//     flags, and ledger commit classification), validated at load time so a
//     broken graph fails startup instead of silently rejecting transitions
//   - WorkflowValidator: a pure, side-effect-free service that approves or
//     rejects a requested transition against the table
//   - The typed validation error taxonomy (IllegalTransition,
//     InsufficientPermission, MissingFields, MissingSignature)
//
// Domain services contain business logic spanning value objects that does
// not naturally belong to a single aggregate root.
package services
