// Package audit provides the adapter for the external audit collaborator.
// Permanent state-change history is the collaborator's responsibility; this
// engine only emits events toward it.
package audit

import (
	"context"
	"log/slog"

	"lading/internal/core/ports"
)

// SlogEmitter implements ports.AuditEmitter by writing structured audit
// events to the process log. The structured-log stream stands in for the
// audit collaborator's ingest endpoint; swapping in a remote emitter only
// changes this adapter.
type SlogEmitter struct {
	logger *slog.Logger
}

// NewSlogEmitter creates an audit emitter writing to the given logger.
func NewSlogEmitter(logger *slog.Logger) *SlogEmitter {
	return &SlogEmitter{
		logger: logger.With("component", "audit_emitter"),
	}
}

// LogEvent records one state-change event.
func (e *SlogEmitter) LogEvent(ctx context.Context, event ports.AuditEvent) error {
	e.logger.InfoContext(ctx, "Audit event",
		"type", event.Type,
		"document_id", event.DocumentID.String(),
		"before", event.BeforeState.String(),
		"after", event.AfterState.String(),
		"version", event.Version,
		"actor", event.Actor,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
