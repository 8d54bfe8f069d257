package document

import (
	"errors"
	"fmt"
	"time"

	"lading/internal/core/domain/model/kernel"
	"lading/internal/pkg/errs"
)

var (
	// ErrDocumentIsNotConstructed is returned when a Document instance was not created
	// through the NewDocument or RestoreDocument factory methods.
	ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument or RestoreDocument")

	// ErrActorIsRequired is returned when a state change is attempted without
	// identifying the acting party.
	ErrActorIsRequired = errors.New("actor is required")
)

// InitialVersion is the version a freshly issued bill of lading starts at.
// Every successful state change increments the version by exactly one.
const InitialVersion int64 = 1

// Document is the aggregate root for a bill of lading's lifecycle record.
// It carries the current workflow state and the monotonically increasing
// version used for optimistic concurrency control.
//
// Document follows these invariants:
//   - Must have a valid unique identifier
//   - State is always a valid State value
//   - Version starts at InitialVersion and only ever increases by 1 per change
//   - Can only be created through NewDocument or RestoreDocument
//
// Whether a particular state change is legal is decided by the workflow
// validator against the rule table; Document itself only enforces structural
// invariants. The durable compare-and-swap on version happens in the
// repository, not here.
type Document struct {
	// id is the unique identifier for the bill of lading
	id kernel.UUID

	// state is the current lifecycle state
	state State

	// version is the optimistic-concurrency version, incremented per state change
	version int64

	// lastUpdatedBy identifies the actor of the most recent state change
	lastUpdatedBy string

	// lastUpdatedAt is the time of the most recent state change
	lastUpdatedAt time.Time

	// isConstructed ensures the document was created via a factory method
	isConstructed bool
}

// NewDocument creates a new bill of lading record in the Pending state
// at InitialVersion, attributed to the issuing actor.
//
// Returns a validation error if the identifier is invalid or the actor is empty.
func NewDocument(id kernel.UUID, issuedBy string) (*Document, error) {
	doc := &Document{
		state:         Pending,
		version:       InitialVersion,
		lastUpdatedAt: time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		doc.setID(id),
		doc.setLastUpdatedBy(issuedBy),
	); err != nil {
		return nil, err
	}

	return doc, nil
}

// RestoreDocument reconstructs a Document from persisted attributes.
// Used by repositories when loading records from the durable store.
// All attributes are validated; a record with an invalid state or
// non-positive version is rejected rather than silently accepted.
func RestoreDocument(
	id kernel.UUID,
	state State,
	version int64,
	lastUpdatedBy string,
	lastUpdatedAt time.Time,
) (*Document, error) {
	doc := &Document{
		lastUpdatedAt: lastUpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		doc.setID(id),
		doc.setState(state),
		doc.setVersion(version),
		doc.setLastUpdatedBy(lastUpdatedBy),
	); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate ensures the Document instance was properly constructed through a factory method.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}

	return nil
}

// IsEqual compares two documents by their unique identifiers.
func (d *Document) IsEqual(other *Document) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the document's unique identifier.
func (d *Document) ID() kernel.UUID {
	return d.id
}

// State returns the current lifecycle state.
func (d *Document) State() State {
	return d.state
}

// Version returns the optimistic-concurrency version.
func (d *Document) Version() int64 {
	return d.version
}

// LastUpdatedBy returns the actor of the most recent state change.
func (d *Document) LastUpdatedBy() string {
	return d.lastUpdatedBy
}

// LastUpdatedAt returns the time of the most recent state change.
func (d *Document) LastUpdatedAt() time.Time {
	return d.lastUpdatedAt
}

// Advance moves the document to the target state on behalf of the actor,
// incrementing the version by exactly one.
//
// Advance assumes the transition has already been approved by the workflow
// validator; it enforces only structural invariants (valid target state,
// non-empty actor). The durable store's conditional write decides whether
// this in-memory advance actually wins against concurrent writers.
func (d *Document) Advance(target State, actor string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if err := target.Validate(); err != nil {
		return err
	}

	if actor == "" {
		return ErrActorIsRequired
	}

	d.state = target
	d.version++
	d.lastUpdatedBy = actor
	d.lastUpdatedAt = time.Now().UTC()
	return nil
}

// setID validates and sets the document's unique identifier.
func (d *Document) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setState validates and sets the document's lifecycle state.
func (d *Document) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	d.state = state
	return nil
}

// setVersion validates and sets the document's version.
// Version must be at least InitialVersion.
func (d *Document) setVersion(version int64) error {
	if version < InitialVersion {
		return errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is less than %d", version, InitialVersion))
	}
	d.version = version
	return nil
}

// setLastUpdatedBy validates and sets the last updating actor.
func (d *Document) setLastUpdatedBy(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	d.lastUpdatedBy = actor
	return nil
}
