// Package guard provides a defensive-construction helper for domain objects.
//
// Embedding a ConstructorGuard in a value object or command lets the code
// distinguish instances created through their designated constructor from
// zero values, so invariants established at construction time cannot be
// bypassed by direct struct literals.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation error
// is supplied. Validation always fails with a meaningful message even if the
// caller did not provide a specific one.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// The zero value is "not constructed" and fails Validate.
//
// Example:
//
//	type ItemSpec struct {
//	    itemType string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewItemSpec(itemType string) (ItemSpec, error) {
//	    if itemType == "" {
//	        return ItemSpec{}, errors.New("item type is required")
//	    }
//	    return ItemSpec{itemType: itemType, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (s ItemSpec) Validate() error {
//	    return s.guard.Validate(ErrItemSpecIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as properly
// constructed. Call it only from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the enclosing object was built through its
// constructor, and validationError otherwise. A nil validationError falls back
// to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
