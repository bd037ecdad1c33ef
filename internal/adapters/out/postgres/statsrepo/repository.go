package statsrepo

import (
	"context"
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/stats"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStatsRepository implements StatsRepository using GORM.
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GORM stats repository.
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// GetOrCreate retrieves the participant's stats row, returning a fresh empty
// aggregate when the participant has no history yet. The row itself is written
// on Save, inside the caller's transaction.
func (r *GormStatsRepository) GetOrCreate(ctx context.Context, participantID kernel.UUID) (*stats.ParticipantStats, error) {
	if err := participantID.Validate(); err != nil {
		return nil, err
	}

	var dto ParticipantStatsDTO
	err := r.db.WithContext(ctx).First(&dto, "participant_id = ?", participantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stats.NewParticipantStats(participantID)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Save persists the participant's counters, inserting the row on first write
// and updating it afterwards.
func (r *GormStatsRepository) Save(ctx context.Context, aggregate *stats.ParticipantStats) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
