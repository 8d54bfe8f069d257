// Package commitment provides the domain model for asynchronous ledger
// commitment of bill of lading state changes.
//
// The package includes:
//   - Job: a queued unit of work recording one state change on the ledger
//   - Status: the job state machine (Queued -> Submitting -> Committed /
//     FailedPermanent, with requeue on transient failure)
//   - Priority: queue service ordering (High before Normal)
//   - JobType: classification used to group batch submissions
//
// Key business rules:
//   - Exactly one job is created per successful document state change
//   - Jobs reference their document by id and version only (weak reference)
//   - A permanently failed job marks a divergence between the application
//     state and the ledger that must be reconciled out of band
package commitment
