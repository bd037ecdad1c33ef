package queries

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/guard"
)

var (
	ErrGetOwnerOrdersQueryIsNotConstructed = errors.New(
		"GetOwnerOrdersQuery must be created via NewGetOwnerOrdersQuery constructor",
	)
)

// GetOwnerOrdersQuery retrieves every order a participant has posted,
// regardless of status. This is the owner's view of their own board activity.
type GetOwnerOrdersQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOwnerOrdersQuery creates a query for a participant's own orders.
// Validates the owner identifier.
func NewGetOwnerOrdersQuery(ownerID kernel.UUID) (GetOwnerOrdersQuery, error) {
	ownerQuery := GetOwnerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := ownerQuery.setOwnerID(ownerID); err != nil {
		return GetOwnerOrdersQuery{}, err
	}

	return ownerQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOwnerOrdersQueryIsNotConstructed if validation fails.
func (q GetOwnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOwnerOrdersQueryIsNotConstructed)
}

// OwnerID returns the participant whose orders are requested.
func (q GetOwnerOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q *GetOwnerOrdersQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	q.ownerID = ownerID
	return nil
}
