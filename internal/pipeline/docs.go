// Package pipeline implements the asynchronous blockchain commitment
// pipeline: the bounded priority queue holding confirmed transitions and the
// batch committer that drains it into the ledger.
//
// # Design
//
// The request path stops at Enqueue. Everything ledger-facing — batching,
// bounded-concurrency submission, retry with backoff, dead-lettering — runs
// behind the queue on the committer's schedule, so request latency is bounded
// by the durable store write and never by ledger round-trip time.
//
// # Concurrency
//
// The queue's deques and job registry are the only shared mutable state.
// Every access goes through one mutex; the committer receives job snapshots
// and reports results back by id. Producers are the many concurrent
// transition requests, the consumer is the single committer loop.
//
// # Failure semantics
//
//   - Transient ledger failures re-enqueue with a backoff of
//     baseRetryDelay*retryCount, up to maxRetries attempts.
//   - Permanent failures (or retry exhaustion) dead-letter the job. The
//     document's durable state has already advanced; the dead letter records
//     the divergence for the reconciliation path instead of dropping it.
//   - Enqueue at max depth fails fast with ErrQueueFull.
package pipeline
