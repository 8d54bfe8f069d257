package commands

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/domain/services"
	"lading/internal/core/ports"
)

// RequestTransitionResult is the synchronous answer to a transition request.
// The ledger commit is asynchronous; JobID supports polling for its outcome.
type RequestTransitionResult struct {
	NewVersion  int64
	CommittedAt time.Time
	JobID       kernel.UUID
}

// RequestTransitionCommandHandler executes the validate-then-update sequence:
//
//  1. read the current record (cache-aside)
//  2. validate the transition against the workflow rule table
//  3. advance the record with a single conditional write (CAS on version)
//  4. enqueue exactly one commitment job for the ledger
//  5. emit audit and notification events
//
// The caller gets an answer as soon as the durable write lands; ledger
// latency never reaches the request path.
//
// Error contract:
//   - validation failures (illegal transition, permission, fields,
//     signature) reject synchronously with no state change and no job
//   - ports.ErrVersionConflict means a concurrent writer won; the caller
//     must re-read and retry the whole sequence, including validation
//   - ports.ErrQueueFull is a retryable capacity error; the store write has
//     already committed (commit-then-enqueue), so the store is never out of
//     sync with a rejected job, at the cost of an orphaned commitment that
//     the reconciliation sweep will surface
type RequestTransitionCommandHandler struct {
	documents ports.DocumentRepository
	rules     *services.RuleTable
	validator services.WorkflowValidator
	queue     ports.CommitmentQueue
	audit     ports.AuditEmitter
	notifier  ports.NotificationEmitter
	logger    *slog.Logger
}

// NewRequestTransitionCommandHandler creates the transition handler.
func NewRequestTransitionCommandHandler(
	documents ports.DocumentRepository,
	rules *services.RuleTable,
	queue ports.CommitmentQueue,
	audit ports.AuditEmitter,
	notifier ports.NotificationEmitter,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		documents: documents,
		rules:     rules,
		validator: services.NewWorkflowValidator(rules),
		queue:     queue,
		audit:     audit,
		notifier:  notifier,
		logger:    logger.With("component", "request_transition_handler"),
	}
}

// Handle processes one transition request.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (RequestTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return RequestTransitionResult{}, err
	}

	current, err := h.documents.Get(ctx, cmd.DocumentID())
	if err != nil {
		return RequestTransitionResult{}, err
	}

	if err = h.validator.Validate(current.State(), cmd.TargetState(), cmd.ActorRoles(), cmd.Payload()); err != nil {
		return RequestTransitionResult{}, err
	}

	// The CAS resolves races at the call boundary: exactly one writer wins
	// per version, losers get ErrVersionConflict and must start over.
	updated, err := h.documents.UpdateState(
		ctx,
		cmd.DocumentID(),
		cmd.TargetState(),
		current.Version(),
		cmd.Actor(),
	)
	if err != nil {
		return RequestTransitionResult{}, err
	}

	jobID, err := h.enqueueCommitment(current, updated, cmd)
	if err != nil {
		// Commit-then-enqueue: the durable write stands. Surface the
		// capacity error so the caller can retry enqueueing later via
		// reconciliation; never roll back the state change.
		return RequestTransitionResult{}, err
	}

	h.emitEvents(ctx, current, updated, cmd)

	return RequestTransitionResult{
		NewVersion:  updated.Version(),
		CommittedAt: updated.LastUpdatedAt(),
		JobID:       jobID,
	}, nil
}

// enqueueCommitment creates exactly one commitment job for the state change.
func (h RequestTransitionCommandHandler) enqueueCommitment(
	before *document.Document,
	after *document.Document,
	cmd RequestTransitionCommand,
) (kernel.UUID, error) {
	// The target rule always exists: the validator already approved the edge.
	rule, _ := h.rules.RuleFor(after.State())

	payload := maps.Clone(cmd.Payload())
	if payload == nil {
		payload = make(map[string]any)
	}
	payload["documentId"] = after.ID().String()
	payload["fromState"] = before.State().String()
	payload["toState"] = after.State().String()
	payload["version"] = after.Version()
	payload["actor"] = cmd.Actor()

	jobID := kernel.NewUUID()
	job, err := commitment.NewJob(
		jobID,
		after.ID(),
		after.Version(),
		rule.CommitJobType,
		payload,
		rule.CommitPriority,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.queue.Enqueue(job); err != nil {
		return kernel.UUID{}, err
	}

	return jobID, nil
}

// emitEvents forwards the state change to the audit and notification
// collaborators. Audit failures are logged and swallowed: they must never
// fail or roll back the transition.
func (h RequestTransitionCommandHandler) emitEvents(
	ctx context.Context,
	before *document.Document,
	after *document.Document,
	cmd RequestTransitionCommand,
) {
	if err := h.audit.LogEvent(ctx, ports.AuditEvent{
		Type:        "document.transitioned",
		DocumentID:  after.ID(),
		BeforeState: before.State(),
		AfterState:  after.State(),
		Version:     after.Version(),
		Actor:       cmd.Actor(),
		Metadata:    cmd.Payload(),
		OccurredAt:  after.LastUpdatedAt(),
	}); err != nil {
		h.logger.WarnContext(ctx, "Audit emission failed",
			"document_id", after.ID().String(), "error", err)
	}

	h.notifier.Notify(ctx, ports.TransitionSummary{
		DocumentID: after.ID(),
		FromState:  before.State(),
		ToState:    after.State(),
		Actor:      cmd.Actor(),
		OccurredAt: after.LastUpdatedAt(),
	})
}
