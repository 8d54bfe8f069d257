// Package notify provides the adapter for the external notification
// collaborator. Delivery transports (email, SMS, push) live outside this
// engine; notifications are fire-and-forget.
package notify

import (
	"context"
	"log/slog"

	"lading/internal/core/ports"
)

// SlogNotifier implements ports.NotificationEmitter by writing transition
// summaries to the process log.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// Notify publishes a transition summary. Fire-and-forget: no error returns.
func (n *SlogNotifier) Notify(ctx context.Context, summary ports.TransitionSummary) {
	n.logger.InfoContext(ctx, "Transition notification",
		"document_id", summary.DocumentID.String(),
		"from", summary.FromState.String(),
		"to", summary.ToState.String(),
		"actor", summary.Actor,
		"occurred_at", summary.OccurredAt,
	)
}
