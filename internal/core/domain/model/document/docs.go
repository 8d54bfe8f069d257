// Package document provides domain entities for the bill of lading lifecycle.
// It implements the Document aggregate root that carries the workflow state
// and the optimistic-concurrency version, together with the State and Role
// enums referenced by the transition rule table.
//
// The package includes:
//   - Document: The aggregate root holding (state, version, lastUpdatedBy, lastUpdatedAt)
//   - State: The closed set of lifecycle states
//   - Role: The closed set of actor roles
//
// Key business rules:
//   - The version starts at 1 and increases by exactly 1 per state change
//   - Which state transitions are legal is defined externally by the rule
//     table in the services package; Document enforces structural invariants only
//   - Documents can only be created through NewDocument or RestoreDocument
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package document
