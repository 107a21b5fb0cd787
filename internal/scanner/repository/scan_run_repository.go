package repository

import (
	"context"
	"time"

	"golang-insider-scanner/internal/entity"

	"gorm.io/gorm"
)

// ScanRunRepository defines the interface for scan run history.
type ScanRunRepository interface {
	Create(ctx context.Context, run *entity.ScanRun) error
	Update(ctx context.Context, run *entity.ScanRun) error
	FindByRunID(ctx context.Context, runID string) (*entity.ScanRun, error)
	FindRecent(ctx context.Context, limit int) ([]entity.ScanRun, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// NewScanRunRepository creates a new GORM-based scan run repository.
func NewScanRunRepository(db *gorm.DB) ScanRunRepository {
	return &scanRunRepository{db: db}
}

type scanRunRepository struct {
	db *gorm.DB
}

func (r *scanRunRepository) Create(ctx context.Context, run *entity.ScanRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update writes every column, including zero values.
func (r *scanRunRepository) Update(ctx context.Context, run *entity.ScanRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *scanRunRepository) FindByRunID(ctx context.Context, runID string) (*entity.ScanRun, error) {
	var run entity.ScanRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *scanRunRepository) FindRecent(ctx context.Context, limit int) ([]entity.ScanRun, error) {
	var runs []entity.ScanRun
	if err := r.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *scanRunRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("started_at < ?", before).Delete(&entity.ScanRun{})
	return tx.RowsAffected, tx.Error
}
