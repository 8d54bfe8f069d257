// Package queries contains read-only operations over the engine's state.
// Implements the Query side of the CQRS pattern: no query ever mutates the
// durable store, the cache may accelerate reads but never changes results.
package queries

import (
	"errors"
	"time"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/guard"
)

var ErrGetDocumentStatusQueryIsNotConstructed = errors.New(
	"GetDocumentStatusQuery must be created via NewGetDocumentStatusQuery constructor",
)

// GetDocumentStatusQuery retrieves the current status record of a bill of lading.
type GetDocumentStatusQuery struct {
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDocumentStatusQuery creates a validated status query.
func NewGetDocumentStatusQuery(documentID kernel.UUID) (GetDocumentStatusQuery, error) {
	if err := documentID.Validate(); err != nil {
		return GetDocumentStatusQuery{}, err
	}

	return GetDocumentStatusQuery{
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDocumentStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentStatusQueryIsNotConstructed)
}

// DocumentID returns the identifier of the bill of lading to read.
func (q GetDocumentStatusQuery) DocumentID() kernel.UUID {
	return q.documentID
}

// GetDocumentStatusQueryResponse is the read model of a status record.
type GetDocumentStatusQueryResponse struct {
	ID            kernel.UUID
	State         document.State
	Version       int64
	LastUpdatedBy string
	LastUpdatedAt time.Time
}
