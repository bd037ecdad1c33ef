package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOwnerOrdersQueryHandler retrieves a participant's orders from the database,
// newest first, across all statuses.
type GetOwnerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOwnerOrdersQueryHandler creates a handler for owner order queries.
// Requires a GORM database connection for query execution.
func NewGetOwnerOrdersQueryHandler(db *gorm.DB) GetOwnerOrdersQueryHandler {
	return GetOwnerOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the owner's orders, newest first.
func (h GetOwnerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOwnerOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
	`, query.OwnerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}
