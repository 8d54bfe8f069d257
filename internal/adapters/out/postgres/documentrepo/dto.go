// Package documentrepo provides the GORM-backed repository for bill of
// lading status records, including the atomic conditional write that anchors
// the engine's optimistic concurrency control.
package documentrepo

import (
	"time"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DocumentDTO represents the database structure for persisting status records.
// The version column carries the optimistic-concurrency counter the CAS
// update conditions on.
type DocumentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	State         int       `gorm:"index"`
	Version       int64
	LastUpdatedBy string
	LastUpdatedAt time.Time
}

// TableName specifies the database table name for status records.
func (DocumentDTO) TableName() string {
	return "documents"
}

// fromDomain converts a document aggregate to its database representation.
func fromDomain(doc *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:            doc.ID().Bytes(),
		State:         int(doc.State()),
		Version:       doc.Version(),
		LastUpdatedBy: doc.LastUpdatedBy(),
		LastUpdatedAt: doc.LastUpdatedAt(),
	}
}

// toDomain converts a database DTO to a document aggregate.
func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return document.RestoreDocument(
		id,
		document.State(dto.State),
		dto.Version,
		dto.LastUpdatedBy,
		dto.LastUpdatedAt,
	)
}
