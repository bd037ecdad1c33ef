package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// GetParticipantStatsQueryHandler retrieves participant statistics from the
// database. Participants the board has never seen get the zero response rather
// than an error: an empty track record is an answer, not a failure.
type GetParticipantStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetParticipantStatsQueryHandler creates a handler for statistics queries.
// Requires a GORM database connection for query execution.
func NewGetParticipantStatsQueryHandler(db *gorm.DB) GetParticipantStatsQueryHandler {
	return GetParticipantStatsQueryHandler{db: db}
}

// Handle executes the query to retrieve the participant's statistics.
func (h GetParticipantStatsQueryHandler) Handle(
	ctx context.Context,
	query GetParticipantStatsQuery,
) (ParticipantStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return ParticipantStatsResponse{}, err
	}

	statsResp := ParticipantStatsResponse{ParticipantID: query.ParticipantID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			orders_created,
			orders_completed,
			orders_delivered,
			total_spent,
			total_earned
		FROM participant_stats
		WHERE participant_id = ?
	`, query.ParticipantID().Bytes()).Row()

	err := row.Scan(
		&statsResp.OrdersCreated,
		&statsResp.OrdersCompleted,
		&statsResp.OrdersDelivered,
		&statsResp.TotalSpent,
		&statsResp.TotalEarned,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return statsResp, nil
	}
	if err != nil {
		return ParticipantStatsResponse{}, err
	}

	return statsResp, nil
}
