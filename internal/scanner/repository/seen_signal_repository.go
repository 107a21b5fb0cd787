package repository

import (
	"context"
	"time"

	"golang-insider-scanner/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeenSignalRepository tracks raw feed events that already produced a candidate.
type SeenSignalRepository interface {
	HasBeenSeen(ctx context.Context, signalID string) (bool, error)
	MarkSeen(ctx context.Context, signalID string, source string) error
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// NewSeenSignalRepository creates a new GORM-based seen signal repository.
func NewSeenSignalRepository(db *gorm.DB) SeenSignalRepository {
	return &seenSignalRepository{db: db}
}

type seenSignalRepository struct {
	db *gorm.DB
}

func (r *seenSignalRepository) HasBeenSeen(ctx context.Context, signalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SeenSignal{}).Where("signal_id = ?", signalID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkSeen is idempotent: a second insert of the same id is ignored.
func (r *seenSignalRepository) MarkSeen(ctx context.Context, signalID string, source string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "signal_id"}},
		DoNothing: true,
	}).Create(&entity.SeenSignal{
		SignalID:  signalID,
		Source:    source,
		FirstSeen: time.Now(),
	}).Error
}

func (r *seenSignalRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("first_seen < ?", before).Delete(&entity.SeenSignal{})
	return tx.RowsAffected, tx.Error
}
