package queries

import (
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/guard"
)

var (
	ErrGetParticipantStatsQueryIsNotConstructed = errors.New(
		"GetParticipantStatsQuery must be created via NewGetParticipantStatsQuery constructor",
	)
)

// GetParticipantStatsQuery retrieves a participant's accumulated board
// statistics: orders posted and completed, deliveries made, money spent and
// earned.
type GetParticipantStatsQuery struct { //nolint:recvcheck //using for validation
	participantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParticipantStatsQuery creates a query for a participant's statistics.
// Validates the participant identifier.
func NewGetParticipantStatsQuery(participantID kernel.UUID) (GetParticipantStatsQuery, error) {
	statsQuery := GetParticipantStatsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := statsQuery.setParticipantID(participantID); err != nil {
		return GetParticipantStatsQuery{}, err
	}

	return statsQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParticipantStatsQueryIsNotConstructed if validation fails.
func (q GetParticipantStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetParticipantStatsQueryIsNotConstructed)
}

// ParticipantID returns the participant whose statistics are requested.
func (q GetParticipantStatsQuery) ParticipantID() kernel.UUID {
	return q.participantID
}

func (q *GetParticipantStatsQuery) setParticipantID(participantID kernel.UUID) error {
	if err := participantID.Validate(); err != nil {
		return err
	}

	q.participantID = participantID
	return nil
}

// ParticipantStatsResponse represents a participant's accumulated statistics.
// A participant with no recorded activity gets the zero response.
type ParticipantStatsResponse struct {
	ParticipantID   kernel.UUID
	OrdersCreated   int
	OrdersCompleted int
	OrdersDelivered int
	TotalSpent      float64
	TotalEarned     float64
}
