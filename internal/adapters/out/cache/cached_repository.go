package cache

import (
	"context"
	"fmt"
	"time"

	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/ports"
)

// DocumentKey is the cache key for a document's status record.
func DocumentKey(id kernel.UUID) string {
	return "document:" + id.String()
}

// PermissionsKey is the cache key for an actor role's available transitions
// on a document.
func PermissionsKey(id kernel.UUID, role document.Role) string {
	return fmt.Sprintf("permissions:%s:%s", id.String(), role)
}

// CachedDocumentRepository decorates a DocumentRepository with cache-aside
// reads and eager invalidation on writes.
//
// Reads check the cache first and populate it with a short TTL on miss;
// reads never mutate durable state. Every successful write deletes the
// document's status entry and all of its permission entries, so an
// immediately following read in the same process observes the new record
// (read-your-writes).
type CachedDocumentRepository struct {
	inner ports.DocumentRepository
	cache ports.Cache
	ttl   time.Duration
}

// NewCachedDocumentRepository wraps a repository with a TTL cache.
func NewCachedDocumentRepository(
	inner ports.DocumentRepository,
	cache ports.Cache,
	ttl time.Duration,
) *CachedDocumentRepository {
	return &CachedDocumentRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// Add persists a new status record and primes no cache entries; the first
// read populates the cache.
func (r *CachedDocumentRepository) Add(ctx context.Context, aggregate *document.Document) error {
	if err := r.inner.Add(ctx, aggregate); err != nil {
		return err
	}

	// A record may be re-issued under an id that previously served a miss;
	// drop anything stale.
	r.invalidate(aggregate.ID())
	return nil
}

// Get serves the status record cache-aside: cache hit wins, miss falls
// through to the durable store and populates the cache with a short TTL.
func (r *CachedDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	if cached, ok := r.cache.Get(DocumentKey(id)); ok {
		if doc, isDoc := cached.(*document.Document); isDoc {
			return doc, nil
		}
	}

	doc, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Set(DocumentKey(id), doc, r.ttl)
	return doc, nil
}

// UpdateState delegates the conditional write and, on success, eagerly
// invalidates the document's cache entries. Failed writes (version conflict,
// not found) leave the cache untouched.
func (r *CachedDocumentRepository) UpdateState(
	ctx context.Context,
	id kernel.UUID,
	target document.State,
	expectedVersion int64,
	actor string,
) (*document.Document, error) {
	doc, err := r.inner.UpdateState(ctx, id, target, expectedVersion, actor)
	if err != nil {
		return nil, err
	}

	r.invalidate(id)
	return doc, nil
}

// invalidate drops the status entry and every permission entry for the
// document. The role set is closed, so the permission keys are enumerable.
func (r *CachedDocumentRepository) invalidate(id kernel.UUID) {
	r.cache.Delete(DocumentKey(id))
	for _, role := range document.AllRoles() {
		r.cache.Delete(PermissionsKey(id, role))
	}
}
