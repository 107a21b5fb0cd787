package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-insider-scanner/internal/entity"
	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/logger"
	"golang-insider-scanner/pkg/utils"
)

// ErrNotificationFailed wraps notifier errors.
var ErrNotificationFailed = errors.New("notification failed")

// Notifier delivers rendered messages to the operator.
type Notifier interface {
	NotifyAlert(ctx context.Context, alert dto.NuclearAlert) error
	NotifyReport(ctx context.Context, subject string, body string) error
}

// AlertGate suppresses exact repeats, enforces the daily quota and dispatches the rest.
type AlertGate struct {
	repo      repository.SentAlertRepository
	notifier  Notifier
	logger    *logger.Logger
	maxPerDay int
	location  *time.Location
	now       func() time.Time
}

// NewAlertGate creates an alert gate counting days in loc.
func NewAlertGate(repo repository.SentAlertRepository, notifier Notifier, log *logger.Logger, maxPerDay int, loc *time.Location) *AlertGate {
	return &AlertGate{
		repo:      repo,
		notifier:  notifier,
		logger:    log,
		maxPerDay: maxPerDay,
		location:  loc,
		now:       time.Now,
	}
}

// Process handles alerts in the given order. A returned error is a persistence failure;
// results gathered so far are returned with it.
func (g *AlertGate) Process(ctx context.Context, alerts []dto.NuclearAlert) ([]dto.AlertResult, error) {
	results := make([]dto.AlertResult, 0, len(alerts))
	for _, alert := range alerts {
		outcome, err := g.processOne(ctx, alert)
		if err != nil {
			return results, err
		}
		results = append(results, dto.AlertResult{NuclearAlert: alert, Outcome: outcome})
	}
	return results, nil
}

func (g *AlertGate) processOne(ctx context.Context, alert dto.NuclearAlert) (dto.AlertOutcome, error) {
	var outcome dto.AlertOutcome

	err := g.repo.WithinLock(ctx, func(store repository.SentAlertStore) error {
		exists, err := store.Exists(ctx, alert.Ticker, string(alert.Action), alert.EvidenceHash)
		if err != nil {
			return fmt.Errorf("check sent alert: %w", err)
		}
		if exists {
			outcome = dto.OutcomeDuplicate
			return nil
		}

		now := g.now()
		sentToday, err := store.CountSince(ctx, utils.StartOfDay(now, g.location))
		if err != nil {
			return fmt.Errorf("count sent alerts: %w", err)
		}
		if sentToday >= int64(g.maxPerDay) {
			outcome = dto.OutcomeRateLimited
			return nil
		}

		record, err := sentAlertRecord(alert, now)
		if err != nil {
			return err
		}
		inserted, err := store.InsertIfAbsent(ctx, record)
		if err != nil {
			return fmt.Errorf("record sent alert: %w", err)
		}
		if !inserted {
			outcome = dto.OutcomeDuplicate
			return nil
		}

		// The record is rolled back when dispatch fails.
		if err := g.notifier.NotifyAlert(ctx, alert); err != nil {
			outcome = dto.OutcomeNotifyFailed
			return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
		}
		outcome = dto.OutcomeSent
		return nil
	})

	if errors.Is(err, ErrNotificationFailed) {
		g.logger.ErrorContext(ctx, "Failed to dispatch alert",
			logger.ErrorField(err),
			logger.StringField("ticker", alert.Ticker),
			logger.StringField("action", string(alert.Action)),
			logger.StringField("evidence_hash", alert.EvidenceHash))
		return dto.OutcomeNotifyFailed, nil
	}
	if err != nil {
		return "", err
	}

	g.logger.InfoContext(ctx, "Alert gate decision",
		logger.StringField("ticker", alert.Ticker),
		logger.StringField("action", string(alert.Action)),
		logger.IntField("confidence", alert.Confidence),
		logger.StringField("outcome", string(outcome)))
	return outcome, nil
}

func sentAlertRecord(alert dto.NuclearAlert, now time.Time) (*entity.SentAlert, error) {
	evidence, err := json.Marshal(alert.Evidence())
	if err != nil {
		return nil, fmt.Errorf("marshal alert evidence: %w", err)
	}
	return &entity.SentAlert{
		Ticker:           alert.Ticker,
		Action:           string(alert.Action),
		EvidenceHash:     alert.EvidenceHash,
		Confidence:       alert.Confidence,
		PrimarySources:   alert.PrimarySources,
		SecondarySources: alert.SecondarySources,
		Evidence:         evidence,
		SentAt:           now,
	}, nil
}
