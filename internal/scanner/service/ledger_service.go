package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"

	"github.com/shopspring/decimal"
)

var (
	// ErrPositionNotFound is returned when selling a ticker with no open position.
	ErrPositionNotFound = errors.New("no open position for ticker")
	// ErrInvalidTrade is returned for non-positive prices or units.
	ErrInvalidTrade = errors.New("price and units must be positive")
)

const (
	ModePaper = "paper"
	ModeLive  = "live"
)

var hundred = decimal.NewFromInt(100)

// LedgerService records manual trades against open positions.
type LedgerService interface {
	Buy(ctx context.Context, req dto.TradeRequest) (*entity.Trade, error)
	Sell(ctx context.Context, req dto.TradeRequest) (*dto.SellResult, error)
	Summary(ctx context.Context) (*dto.LedgerSummary, error)
	Mode() string
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo repository.LedgerRepository, log *logger.Logger, paper bool, recentTrades int) LedgerService {
	return &ledgerService{
		repo:         repo,
		logger:       log,
		paper:        paper,
		recentTrades: recentTrades,
	}
}

type ledgerService struct {
	repo         repository.LedgerRepository
	logger       *logger.Logger
	paper        bool
	recentTrades int
}

func (s *ledgerService) Mode() string {
	return LedgerMode(s.paper)
}

// LedgerMode names the trading mode for the paper flag.
func LedgerMode(paper bool) string {
	if paper {
		return ModePaper
	}
	return ModeLive
}

// Buy opens a new position. Units default to one.
func (s *ledgerService) Buy(ctx context.Context, req dto.TradeRequest) (*entity.Trade, error) {
	ticker, price, units, err := parseTrade(req, decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}

	trade := &entity.Trade{
		Ticker:  ticker,
		Action:  entity.TradeActionBuy,
		Price:   price,
		Units:   units,
		IsPaper: s.paper,
	}
	err = s.repo.Transaction(ctx, func(repo repository.LedgerRepository) error {
		position := &entity.Position{Ticker: ticker, BuyPrice: price, Units: units, IsPaper: s.paper}
		if err := repo.CreatePosition(ctx, position); err != nil {
			return fmt.Errorf("create position: %w", err)
		}
		if err := repo.CreateTrade(ctx, trade); err != nil {
			return fmt.Errorf("create trade: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to record buy", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Buy recorded",
		logger.StringField("ticker", ticker),
		logger.StringField("units", units.String()),
		logger.StringField("price", price.String()))
	return trade, nil
}

// Sell reduces or closes the oldest open position for the ticker. Units default to the whole position
// and are capped at what the position holds.
func (s *ledgerService) Sell(ctx context.Context, req dto.TradeRequest) (*dto.SellResult, error) {
	ticker, price, units, err := parseTrade(req, decimal.Zero)
	if err != nil {
		return nil, err
	}

	var result *dto.SellResult
	err = s.repo.Transaction(ctx, func(repo repository.LedgerRepository) error {
		position, err := repo.FindOldestPosition(ctx, ticker)
		if err != nil {
			return fmt.Errorf("find position: %w", err)
		}
		if position == nil {
			return ErrPositionNotFound
		}

		sellUnits := units
		if sellUnits.IsZero() || sellUnits.GreaterThan(position.Units) {
			sellUnits = position.Units
		}
		diff := price.Sub(position.BuyPrice)
		profit := diff.Mul(sellUnits)
		profitPercent := decimal.Zero
		if position.BuyPrice.IsPositive() {
			profitPercent = diff.Div(position.BuyPrice).Mul(hundred).Round(4)
		}

		trade := &entity.Trade{
			Ticker:        ticker,
			Action:        entity.TradeActionSell,
			Price:         price,
			Units:         sellUnits,
			Profit:        profit,
			ProfitPercent: profitPercent,
			IsPaper:       s.paper,
		}
		if err := repo.CreateTrade(ctx, trade); err != nil {
			return fmt.Errorf("create trade: %w", err)
		}

		closed := sellUnits.Equal(position.Units)
		if closed {
			err = repo.DeletePosition(ctx, position.ID)
		} else {
			err = repo.UpdatePositionUnits(ctx, position.ID, position.Units.Sub(sellUnits))
		}
		if err != nil {
			return fmt.Errorf("update position: %w", err)
		}

		result = &dto.SellResult{
			Ticker:        ticker,
			Units:         sellUnits,
			BuyPrice:      position.BuyPrice,
			SellPrice:     price,
			Profit:        profit,
			ProfitPercent: profitPercent,
			Closed:        closed,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPositionNotFound) {
			s.logger.ErrorContext(ctx, "Failed to record sell", logger.ErrorField(err), logger.StringField("ticker", ticker))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Sell recorded",
		logger.StringField("ticker", ticker),
		logger.StringField("units", result.Units.String()),
		logger.StringField("profit_percent", result.ProfitPercent.StringFixed(2)))
	return result, nil
}

// Summary returns open positions, recent trades and realized profit.
func (s *ledgerService) Summary(ctx context.Context) (*dto.LedgerSummary, error) {
	positions, err := s.repo.FindPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("find positions: %w", err)
	}
	trades, err := s.repo.FindRecentTrades(ctx, s.recentTrades)
	if err != nil {
		return nil, fmt.Errorf("find trades: %w", err)
	}
	realized, closed, err := s.repo.RealizedProfit(ctx)
	if err != nil {
		return nil, fmt.Errorf("realized profit: %w", err)
	}
	return &dto.LedgerSummary{
		Mode:         s.Mode(),
		Positions:    positions,
		RecentTrades: trades,
		RealizedPnL:  realized,
		ClosedTrades: closed,
	}, nil
}

func parseTrade(req dto.TradeRequest, defaultUnits decimal.Decimal) (string, decimal.Decimal, decimal.Decimal, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return "", decimal.Zero, decimal.Zero, fmt.Errorf("%w: ticker is required", ErrInvalidTrade)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || !price.IsPositive() {
		return "", decimal.Zero, decimal.Zero, fmt.Errorf("%w: price %q", ErrInvalidTrade, req.Price)
	}
	units := defaultUnits
	if raw := strings.TrimSpace(req.Units); raw != "" {
		units, err = decimal.NewFromString(raw)
		if err != nil || !units.IsPositive() {
			return "", decimal.Zero, decimal.Zero, fmt.Errorf("%w: units %q", ErrInvalidTrade, req.Units)
		}
	}
	return ticker, price, units, nil
}
