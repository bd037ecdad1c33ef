// Package statsrepo provides data transfer objects and mapping functions for
// participant statistics persistence.
package statsrepo

import (
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/stats"

	"github.com/google/uuid"
)

// ParticipantStatsDTO represents the database structure for persisting
// participant statistics, one row per participant.
type ParticipantStatsDTO struct {
	ParticipantID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrdersCreated   int
	OrdersCompleted int
	OrdersDelivered int
	TotalSpent      float64
	TotalEarned     float64
}

// TableName specifies the database table name for participant statistics.
func (ParticipantStatsDTO) TableName() string {
	return "participant_stats"
}

// fromDomain converts a stats aggregate to its database representation.
func fromDomain(aggregate *stats.ParticipantStats) ParticipantStatsDTO {
	return ParticipantStatsDTO{
		ParticipantID:   aggregate.ParticipantID().Bytes(),
		OrdersCreated:   aggregate.OrdersCreated(),
		OrdersCompleted: aggregate.OrdersCompleted(),
		OrdersDelivered: aggregate.OrdersDelivered(),
		TotalSpent:      aggregate.TotalSpent(),
		TotalEarned:     aggregate.TotalEarned(),
	}
}

// toDomain converts a database DTO to a stats aggregate.
func toDomain(dto ParticipantStatsDTO) (*stats.ParticipantStats, error) {
	participantID, err := kernel.UUIDFromBytes(dto.ParticipantID[:])
	if err != nil {
		return nil, err
	}

	return stats.RestoreParticipantStats(
		participantID,
		dto.OrdersCreated,
		dto.OrdersCompleted,
		dto.OrdersDelivered,
		dto.TotalSpent,
		dto.TotalEarned,
	)
}
