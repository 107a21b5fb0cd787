package repository

import (
	"context"
	"errors"

	"golang-insider-scanner/internal/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository defines the interface for positions and trades.
type LedgerRepository interface {
	Transaction(ctx context.Context, fn func(repo LedgerRepository) error) error
	CreatePosition(ctx context.Context, position *entity.Position) error
	// FindOldestPosition returns nil when the ticker has no open position. Inside a
	// transaction the row is locked for update.
	FindOldestPosition(ctx context.Context, ticker string) (*entity.Position, error)
	UpdatePositionUnits(ctx context.Context, id uint, units decimal.Decimal) error
	DeletePosition(ctx context.Context, id uint) error
	FindPositions(ctx context.Context) ([]entity.Position, error)
	CreateTrade(ctx context.Context, trade *entity.Trade) error
	FindRecentTrades(ctx context.Context, limit int) ([]entity.Trade, error)
	RealizedProfit(ctx context.Context) (decimal.Decimal, int, error)
}

// NewLedgerRepository creates a new GORM-based ledger repository.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

type ledgerRepository struct {
	db *gorm.DB
}

func (r *ledgerRepository) Transaction(ctx context.Context, fn func(repo LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}

func (r *ledgerRepository) CreatePosition(ctx context.Context, position *entity.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *ledgerRepository) FindOldestPosition(ctx context.Context, ticker string) (*entity.Position, error) {
	var position entity.Position
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("ticker = ?", ticker).
		Order("created_at asc, id asc").
		First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *ledgerRepository) UpdatePositionUnits(ctx context.Context, id uint, units decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&entity.Position{}).Where("id = ?", id).Update("units", units).Error
}

func (r *ledgerRepository) DeletePosition(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Position{}, id).Error
}

func (r *ledgerRepository) FindPositions(ctx context.Context) ([]entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *ledgerRepository) CreateTrade(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

func (r *ledgerRepository) FindRecentTrades(ctx context.Context, limit int) ([]entity.Trade, error) {
	var trades []entity.Trade
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *ledgerRepository) RealizedProfit(ctx context.Context) (decimal.Decimal, int, error) {
	var row struct {
		Total decimal.Decimal
		Count int
	}
	err := r.db.WithContext(ctx).Model(&entity.Trade{}).
		Select("COALESCE(SUM(profit), 0) AS total, COUNT(*) AS count").
		Where("action = ?", entity.TradeActionSell).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Count, nil
}
