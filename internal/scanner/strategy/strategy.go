package strategy

import (
	"context"
	"errors"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/internal/scanner/repository"
	"golang-insider-scanner/pkg/common"
)

// Result is what one source contributed to a scan.
type Result struct {
	Candidates []dto.Candidate
	Report     dto.SourceReport
}

// SourceStrategy turns one external feed into candidate signals.
// Execute returns an error only when persistence fails; feed failures are reported in Result.
type SourceStrategy interface {
	Execute(ctx context.Context) (Result, error)
	GetSource() dto.SignalSource
}

func fetchFailed(source dto.SignalSource, err error) Result {
	msg := "source unavailable"
	if !errors.Is(err, repository.ErrSourceUnavailable) {
		msg = "fetch failed"
	}
	return Result{Report: dto.SourceReport{
		Source: string(source),
		Status: common.StatusFailed,
		Error:  msg,
	}}
}

func disabled(source dto.SignalSource) Result {
	return Result{Report: dto.SourceReport{
		Source: string(source),
		Status: common.StatusSkipped,
	}}
}

func succeeded(source dto.SignalSource, fetched int, candidates []dto.Candidate) Result {
	return Result{
		Candidates: candidates,
		Report: dto.SourceReport{
			Source:     string(source),
			Status:     common.StatusSuccess,
			Fetched:    fetched,
			Candidates: len(candidates),
		},
	}
}
