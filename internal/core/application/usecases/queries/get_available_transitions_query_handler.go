package queries

import (
	"context"
	"slices"
	"time"

	"lading/internal/adapters/out/cache"
	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/services"
	"lading/internal/core/ports"
)

// cachedRolePermissions is the cached result of a per-role permission
// computation. The state it was computed for is stored alongside so a stale
// entry that survived invalidation is detected and recomputed.
type cachedRolePermissions struct {
	State       document.State
	Transitions []document.State
}

// GetAvailableTransitionsQueryHandler computes the role-filtered outgoing
// edges of a document's current state. Results are cached per document and
// role; transition commands invalidate the permission keys on every
// successful state change.
type GetAvailableTransitionsQueryHandler struct {
	documents ports.DocumentRepository
	validator services.WorkflowValidator
	cache     ports.Cache
	cacheTTL  time.Duration
}

// NewGetAvailableTransitionsQueryHandler creates a handler for transition
// discovery.
func NewGetAvailableTransitionsQueryHandler(
	documents ports.DocumentRepository,
	validator services.WorkflowValidator,
	permissionCache ports.Cache,
	cacheTTL time.Duration,
) GetAvailableTransitionsQueryHandler {
	return GetAvailableTransitionsQueryHandler{
		documents: documents,
		validator: validator,
		cache:     permissionCache,
		cacheTTL:  cacheTTL,
	}
}

// Handle executes the query. The response unions the transitions available
// to each of the actor's roles.
func (h GetAvailableTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableTransitionsQuery,
) (GetAvailableTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAvailableTransitionsQueryResponse{}, err
	}

	doc, err := h.documents.Get(ctx, query.DocumentID())
	if err != nil {
		return GetAvailableTransitionsQueryResponse{}, err
	}

	var transitions []document.State
	for _, role := range query.ActorRoles() {
		for _, state := range h.transitionsForRole(doc, role) {
			if !slices.Contains(transitions, state) {
				transitions = append(transitions, state)
			}
		}
	}
	slices.Sort(transitions)

	return GetAvailableTransitionsQueryResponse{
		DocumentID:   doc.ID(),
		CurrentState: doc.State(),
		Transitions:  transitions,
	}, nil
}

func (h GetAvailableTransitionsQueryHandler) transitionsForRole(
	doc *document.Document,
	role document.Role,
) []document.State {
	key := cache.PermissionsKey(doc.ID(), role)

	if value, ok := h.cache.Get(key); ok {
		if cached, ok := value.(cachedRolePermissions); ok && cached.State == doc.State() {
			return cached.Transitions
		}
	}

	transitions := h.validator.AvailableTransitions(doc.State(), []document.Role{role})
	h.cache.Set(key, cachedRolePermissions{
		State:       doc.State(),
		Transitions: transitions,
	}, h.cacheTTL)

	return transitions
}
