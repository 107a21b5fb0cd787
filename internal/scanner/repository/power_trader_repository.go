package repository

import (
	"context"

	"golang-insider-scanner/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PowerTraderRepository defines the interface for the power trader registry.
type PowerTraderRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	FindAll(ctx context.Context) ([]entity.PowerTrader, error)
	// ReplaceSource swaps every trader of the given source for the supplied set. Names already
	// registered under another source keep that source and take the new score.
	ReplaceSource(ctx context.Context, source string, traders []entity.PowerTrader) error
}

// NewPowerTraderRepository creates a new GORM-based power trader repository.
func NewPowerTraderRepository(db *gorm.DB) PowerTraderRepository {
	return &powerTraderRepository{db: db}
}

type powerTraderRepository struct {
	db *gorm.DB
}

func (r *powerTraderRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&entity.PowerTrader{}).Order("score desc").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *powerTraderRepository) FindAll(ctx context.Context) ([]entity.PowerTrader, error) {
	var traders []entity.PowerTrader
	if err := r.db.WithContext(ctx).Order("score desc").Find(&traders).Error; err != nil {
		return nil, err
	}
	return traders, nil
}

func (r *powerTraderRepository) ReplaceSource(ctx context.Context, source string, traders []entity.PowerTrader) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source = ?", source).Delete(&entity.PowerTrader{}).Error; err != nil {
			return err
		}
		if len(traders) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(&traders).Error
	})
}
