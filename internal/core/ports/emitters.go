package ports

import (
	"context"
	"time"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
)

// AuditEvent describes one state change for the external audit collaborator,
// which owns the permanent history of the document.
type AuditEvent struct {
	Type        string
	DocumentID  kernel.UUID
	BeforeState document.State
	AfterState  document.State
	Version     int64
	Actor       string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// AuditEmitter forwards state change events to the audit collaborator.
// Emission failures are logged and swallowed by callers; they must never
// fail or roll back the status transition itself.
type AuditEmitter interface {
	LogEvent(ctx context.Context, event AuditEvent) error
}

// TransitionSummary is the fire-and-forget notification payload describing a
// completed transition.
type TransitionSummary struct {
	DocumentID kernel.UUID
	FromState  document.State
	ToState    document.State
	Actor      string
	OccurredAt time.Time
}

// NotificationEmitter delivers transition notifications to interested
// parties. Fire-and-forget: no error is returned and delivery is not
// guaranteed by this core.
type NotificationEmitter interface {
	Notify(ctx context.Context, summary TransitionSummary)
}
