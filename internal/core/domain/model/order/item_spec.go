package order

import (
	"errors"
	"maps"

	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

// ErrItemSpecIsNotConstructed is returned when an ItemSpec was not created through
// the NewItemSpec factory function.
var ErrItemSpecIsNotConstructed = errors.New("ItemSpec must be created via NewItemSpec constructor")

// ItemSpec is a value object describing the item an order requests: an item type
// plus any distinguishing attributes (enchantments, grades, custom labels). The
// settlement core never interprets the attributes; it only needs a well-formed
// spec and an equality predicate for matching offered items against orders.
//
// ItemSpec is immutable: attribute maps are copied on the way in and out.
type ItemSpec struct { //nolint:recvcheck //using for validation
	itemType   string
	attributes map[string]string

	guard guard.ConstructorGuard
}

// NewItemSpec creates a validated item specification.
// The item type is required; attributes are optional and copied defensively.
func NewItemSpec(itemType string, attributes map[string]string) (ItemSpec, error) {
	if itemType == "" {
		return ItemSpec{}, errs.NewValueIsRequiredError("itemType")
	}

	spec := ItemSpec{
		itemType: itemType,
		guard:    guard.NewConstructorGuard(),
	}
	if len(attributes) > 0 {
		spec.attributes = maps.Clone(attributes)
	}

	return spec, nil
}

// Validate ensures the spec was created through the constructor.
// Returns ErrItemSpecIsNotConstructed if validation fails.
func (s ItemSpec) Validate() error {
	return s.guard.Validate(ErrItemSpecIsNotConstructed)
}

// Type returns the item type identifier.
func (s ItemSpec) Type() string {
	return s.itemType
}

// Attributes returns a copy of the distinguishing attributes.
// Returns nil when the spec carries none.
func (s ItemSpec) Attributes() map[string]string {
	if s.attributes == nil {
		return nil
	}
	return maps.Clone(s.attributes)
}

// Matches reports whether two specs describe the same item.
// Both the item type and the full attribute set must be equal; an offered item
// with extra or missing attributes does not satisfy the order.
func (s ItemSpec) Matches(other ItemSpec) bool {
	if s.itemType != other.itemType {
		return false
	}
	return maps.Equal(s.attributes, other.attributes)
}
