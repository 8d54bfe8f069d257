package queries

import (
	"context"

	"lading/internal/core/ports"
)

// GetDocumentStatusQueryHandler serves status reads through the cache-aside
// repository: cache hit wins, miss falls back to the durable store.
type GetDocumentStatusQueryHandler struct {
	documents ports.DocumentRepository
}

// NewGetDocumentStatusQueryHandler creates a handler for status reads.
func NewGetDocumentStatusQueryHandler(documents ports.DocumentRepository) GetDocumentStatusQueryHandler {
	return GetDocumentStatusQueryHandler{documents: documents}
}

// Handle executes the query. Never mutates state.
func (h GetDocumentStatusQueryHandler) Handle(
	ctx context.Context,
	query GetDocumentStatusQuery,
) (GetDocumentStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDocumentStatusQueryResponse{}, err
	}

	doc, err := h.documents.Get(ctx, query.DocumentID())
	if err != nil {
		return GetDocumentStatusQueryResponse{}, err
	}

	return GetDocumentStatusQueryResponse{
		ID:            doc.ID(),
		State:         doc.State(),
		Version:       doc.Version(),
		LastUpdatedBy: doc.LastUpdatedBy(),
		LastUpdatedAt: doc.LastUpdatedAt(),
	}, nil
}
