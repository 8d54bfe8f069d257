package ports

import (
	"context"
	"errors"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
)

// ErrVersionConflict is returned by UpdateState when the expected version no
// longer matches the stored version: another writer won the race. The caller
// must re-read the current record and re-run the whole validate-then-update
// sequence; the conflict is never retried silently inside the repository.
var ErrVersionConflict = errors.New("version conflict")

// DocumentRepository defines the persistence contract for bill of lading
// status records. The durable store is the authoritative application state;
// the ledger is only an eventually consistent audit layer behind it.
type DocumentRepository interface {
	// Add persists a new document record.
	// The document must be valid and not already exist.
	Add(ctx context.Context, aggregate *document.Document) error

	// Get retrieves a document record by its unique identifier.
	// Never mutates state. Implementations may serve reads from a cache.
	Get(ctx context.Context, id kernel.UUID) (*document.Document, error)

	// UpdateState advances the document to the target state with a single
	// atomic conditional write (compare-and-swap on version). Exactly one
	// concurrent caller can win for a given expectedVersion.
	//
	// Returns the new record (version incremented by one) on success,
	// ErrVersionConflict when the expected version is stale, or an
	// ObjectNotFoundError when the document does not exist.
	UpdateState(
		ctx context.Context,
		id kernel.UUID,
		target document.State,
		expectedVersion int64,
		actor string,
	) (*document.Document, error)
}
