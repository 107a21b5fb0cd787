package repository

import (
	"context"
	"time"

	"golang-insider-scanner/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sentAlertLockKey is the advisory lock serializing the check-insert-dispatch sequence across processes.
const sentAlertLockKey int64 = 0x53454e54

// SentAlertStore is the transaction-bound view of the sent alert log.
type SentAlertStore interface {
	Exists(ctx context.Context, ticker, action, evidenceHash string) (bool, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	// InsertIfAbsent returns false when the (ticker, action, evidence_hash) key already exists.
	InsertIfAbsent(ctx context.Context, alert *entity.SentAlert) (bool, error)
}

// SentAlertRepository defines the interface for sent alert data operations.
type SentAlertRepository interface {
	// WithinLock runs fn inside one transaction holding the sent alert advisory lock.
	// Returning an error from fn rolls back everything fn wrote.
	WithinLock(ctx context.Context, fn func(store SentAlertStore) error) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]entity.SentAlert, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// NewSentAlertRepository creates a new GORM-based sent alert repository.
func NewSentAlertRepository(db *gorm.DB) SentAlertRepository {
	return &sentAlertRepository{db: db}
}

type sentAlertRepository struct {
	db *gorm.DB
}

func (r *sentAlertRepository) WithinLock(ctx context.Context, fn func(store SentAlertStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", sentAlertLockKey).Error; err != nil {
			return err
		}
		return fn(&sentAlertRepository{db: tx})
	})
}

func (r *sentAlertRepository) Exists(ctx context.Context, ticker, action, evidenceHash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SentAlert{}).
		Where("ticker = ? AND action = ? AND evidence_hash = ?", ticker, action, evidenceHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sentAlertRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SentAlert{}).Where("sent_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *sentAlertRepository) InsertIfAbsent(ctx context.Context, alert *entity.SentAlert) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "action"}, {Name: "evidence_hash"}},
		DoNothing: true,
	}).Create(alert)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *sentAlertRepository) FindRecent(ctx context.Context, limit int) ([]entity.SentAlert, error) {
	var alerts []entity.SentAlert
	if err := r.db.WithContext(ctx).Order("sent_at desc").Limit(limit).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *sentAlertRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("sent_at < ?", before).Delete(&entity.SentAlert{})
	return tx.RowsAffected, tx.Error
}
