package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"lading/internal/adapters/out/cache"
	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/ports"
	"lading/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryDocumentRepository is an in-memory ports.DocumentRepository that
// counts reads, so tests can observe cache hits and misses.
type memoryDocumentRepository struct {
	mu   sync.Mutex
	docs map[kernel.UUID]*document.Document
	gets int
}

func newMemoryDocumentRepository() *memoryDocumentRepository {
	return &memoryDocumentRepository{docs: make(map[kernel.UUID]*document.Document)}
}

func (m *memoryDocumentRepository) Add(ctx context.Context, doc *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID()] = doc
	return nil
}

func (m *memoryDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	doc, ok := m.docs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("documentId", id.String())
	}
	return doc, nil
}

func (m *memoryDocumentRepository) UpdateState(
	ctx context.Context,
	id kernel.UUID,
	target document.State,
	expectedVersion int64,
	actor string,
) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.docs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("documentId", id.String())
	}
	if current.Version() != expectedVersion {
		return nil, ports.ErrVersionConflict
	}

	updated, err := document.RestoreDocument(id, target, expectedVersion+1, actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	m.docs[id] = updated
	return updated, nil
}

func (m *memoryDocumentRepository) getCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}

func newCachedRepository(t *testing.T) (*cache.CachedDocumentRepository, *memoryDocumentRepository, ports.Cache) {
	t.Helper()

	inner := newMemoryDocumentRepository()
	ttlCache := cache.NewGoCache(time.Minute, time.Minute)
	return cache.NewCachedDocumentRepository(inner, ttlCache, time.Minute), inner, ttlCache
}

func seedDocument(t *testing.T, repo *cache.CachedDocumentRepository) *document.Document {
	t.Helper()

	doc, err := document.NewDocument(kernel.NewUUID(), "shipper@acme")
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), doc))
	return doc
}

func TestCachedDocumentRepository_Get(t *testing.T) {
	t.Run("should fall through to the store on miss and cache the result", func(t *testing.T) {
		repo, inner, _ := newCachedRepository(t)
		doc := seedDocument(t, repo)

		first, err := repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)
		assert.True(t, first.IsEqual(doc))
		assert.Equal(t, 1, inner.getCount())

		second, err := repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)
		assert.True(t, second.IsEqual(doc))
		assert.Equal(t, 1, inner.getCount(), "second read should be a cache hit")
	})

	t.Run("should not cache misses for unknown documents", func(t *testing.T) {
		repo, inner, _ := newCachedRepository(t)
		unknown := kernel.NewUUID()

		_, err := repo.Get(context.Background(), unknown)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = repo.Get(context.Background(), unknown)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, 2, inner.getCount())
	})

	t.Run("should serve an expired entry from the store", func(t *testing.T) {
		inner := newMemoryDocumentRepository()
		ttlCache := cache.NewGoCache(time.Minute, time.Minute)
		repo := cache.NewCachedDocumentRepository(inner, ttlCache, 5*time.Millisecond)
		doc := seedDocument(t, repo)

		_, err := repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, inner.getCount(), "expired entry should miss")
	})
}

func TestCachedDocumentRepository_UpdateState(t *testing.T) {
	t.Run("should never serve a stale read after a successful write", func(t *testing.T) {
		repo, _, _ := newCachedRepository(t)
		doc := seedDocument(t, repo)

		// Warm the cache with the Pending record.
		_, err := repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)

		updated, err := repo.UpdateState(context.Background(),
			doc.ID(), document.Approved, doc.Version(), "shipper@acme")
		require.NoError(t, err)
		assert.Equal(t, document.Approved, updated.State())

		fresh, err := repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)
		assert.Equal(t, document.Approved, fresh.State())
		assert.Equal(t, doc.Version()+1, fresh.Version())
	})

	t.Run("should invalidate permission entries on write", func(t *testing.T) {
		repo, _, ttlCache := newCachedRepository(t)
		doc := seedDocument(t, repo)

		for _, role := range document.AllRoles() {
			ttlCache.Set(cache.PermissionsKey(doc.ID(), role), []document.State{document.Approved}, time.Minute)
		}

		_, err := repo.UpdateState(context.Background(),
			doc.ID(), document.Approved, doc.Version(), "shipper@acme")
		require.NoError(t, err)

		for _, role := range document.AllRoles() {
			_, ok := ttlCache.Get(cache.PermissionsKey(doc.ID(), role))
			assert.False(t, ok, "permission entry for %s should be invalidated", role)
		}
	})

	t.Run("should leave the cache untouched on version conflict", func(t *testing.T) {
		repo, inner, _ := newCachedRepository(t)
		doc := seedDocument(t, repo)

		_, err := repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)

		_, err = repo.UpdateState(context.Background(),
			doc.ID(), document.Approved, doc.Version()+41, "shipper@acme")
		require.ErrorIs(t, err, ports.ErrVersionConflict)

		_, err = repo.Get(context.Background(), doc.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, inner.getCount(), "cached entry should survive a failed write")
	})
}
