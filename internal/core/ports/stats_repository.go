package ports

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/stats"
)

// StatsRepository defines the persistence contract for participant statistics.
// Stats writes always ride in the same transaction as the order mutation that
// caused them.
type StatsRepository interface {
	// GetOrCreate retrieves the participant's stats row, creating an empty one
	// when the participant has no history yet.
	GetOrCreate(ctx context.Context, participantID kernel.UUID) (*stats.ParticipantStats, error)

	// Save persists the participant's counters, inserting or updating as needed.
	Save(ctx context.Context, aggregate *stats.ParticipantStats) error
}
