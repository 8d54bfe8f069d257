// Package guard provides the constructor guard pattern used by commands and
// domain value objects to ensure instances are only created through their
// designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through
// its constructor. The zero value fails validation; NewConstructorGuard
// produces a guard that passes.
//
// Example usage:
//
//	type RequestTransitionCommand struct {
//	    documentID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewRequestTransitionCommand(...) (RequestTransitionCommand, error) {
//	    cmd := RequestTransitionCommand{guard: guard.NewConstructorGuard()}
//	    ...
//	}
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns the supplied error, or ErrDefaultConstructorGuard when
// the supplied error is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}

	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
