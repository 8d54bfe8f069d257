package documentrepo

import (
	"context"
	"errors"
	"time"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/ports"
	"lading/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDocumentRepository implements ports.DocumentRepository using GORM.
//
// UpdateState is the optimistic-concurrency control point of the whole
// engine: it issues a single atomic conditional UPDATE keyed on the expected
// version, never a read-then-write pair, so there is no time-of-check/
// time-of-use window between checking and changing the version.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GORM document repository.
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Add saves a new status record to the database.
func (r *GormDocumentRepository) Add(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Get retrieves a status record by ID.
func (r *GormDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateState advances the record with a single conditional write:
//
//	UPDATE documents SET state=?, version=?, ... WHERE id=? AND version=?
//
// Exactly one of any set of concurrent callers with the same expectedVersion
// can match the WHERE clause; the row-level atomicity of the statement is
// what serializes writers per document. RowsAffected==0 is disambiguated
// with a follow-up read: missing row means not found, present row means the
// version went stale and the caller must re-read and retry the whole
// validate-then-update sequence.
func (r *GormDocumentRepository) UpdateState(
	ctx context.Context,
	id kernel.UUID,
	target document.State,
	expectedVersion int64,
	actor string,
) (*document.Document, error) {
	if err := errors.Join(id.Validate(), target.Validate()); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, document.ErrActorIsRequired
	}

	now := time.Now().UTC()
	newVersion := expectedVersion + 1

	result := r.db.WithContext(ctx).Model(&DocumentDTO{}).
		Where("id = ? AND version = ?", id.Bytes(), expectedVersion).
		Updates(map[string]any{
			"state":           int(target),
			"version":         newVersion,
			"last_updated_by": actor,
			"last_updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var probe DocumentDTO
		if err := r.db.WithContext(ctx).First(&probe, "id = ?", id.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NewObjectNotFoundError("document", id.String())
			}
			return nil, err
		}
		return nil, ports.ErrVersionConflict
	}

	return document.RestoreDocument(id, target, newVersion, actor, now)
}
