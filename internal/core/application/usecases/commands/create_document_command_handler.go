package commands

import (
	"context"
	"time"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/ports"
)

// CreateDocumentCommandHandler handles the issuance of new bills of lading.
// Persists the initial Pending record and emits an audit event.
type CreateDocumentCommandHandler struct {
	documents ports.DocumentRepository
	audit     ports.AuditEmitter
}

// NewCreateDocumentCommandHandler creates a handler for document issuance.
func NewCreateDocumentCommandHandler(
	documents ports.DocumentRepository,
	audit ports.AuditEmitter,
) CreateDocumentCommandHandler {
	return CreateDocumentCommandHandler{
		documents: documents,
		audit:     audit,
	}
}

// Handle processes the issuance command. The new record starts in Pending at
// version 1; audit emission failures never fail the issuance.
func (h CreateDocumentCommandHandler) Handle(ctx context.Context, cmd CreateDocumentCommand) (*document.Document, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	doc, err := document.NewDocument(cmd.DocumentID(), cmd.IssuedBy())
	if err != nil {
		return nil, err
	}

	if err = h.documents.Add(ctx, doc); err != nil {
		return nil, err
	}

	_ = h.audit.LogEvent(ctx, ports.AuditEvent{
		Type:        "document.issued",
		DocumentID:  doc.ID(),
		BeforeState: document.Unknown,
		AfterState:  doc.State(),
		Version:     doc.Version(),
		Actor:       cmd.IssuedBy(),
		OccurredAt:  time.Now().UTC(),
	})

	return doc, nil
}
