package dto

import "time"

type ScanStatus string

const (
	ScanSuccess ScanStatus = "success"
	ScanSkipped ScanStatus = "skipped"
	ScanError   ScanStatus = "error"
)

// AlertOutcome is the alert gate decision for one alert.
type AlertOutcome string

const (
	OutcomeSent         AlertOutcome = "sent"
	OutcomeDuplicate    AlertOutcome = "duplicate"
	OutcomeRateLimited  AlertOutcome = "rate_limited"
	OutcomeNotifyFailed AlertOutcome = "notify_failed"
)

// AlertResult pairs an alert with what the gate did with it.
type AlertResult struct {
	NuclearAlert
	Outcome AlertOutcome `json:"outcome"`
}

// SourceReport summarizes one adapter's contribution to a scan.
type SourceReport struct {
	Source     string `json:"source"`
	Status     string `json:"status"`
	Fetched    int    `json:"fetched"`
	Candidates int    `json:"candidates"`
	Error      string `json:"error,omitempty"`
}

// ScanResult is returned by every scan invocation.
type ScanResult struct {
	Status      ScanStatus     `json:"status"`
	RunID       string         `json:"run_id,omitempty"`
	Trigger     string         `json:"trigger,omitempty"`
	SignalCount int            `json:"signal_count"`
	Alerts      []AlertResult  `json:"alerts"`
	Sources     []SourceReport `json:"sources,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	DurationMs  int64          `json:"duration_ms"`
	Error       string         `json:"error,omitempty"`
}

// SentCount returns how many alerts were dispatched.
func (r ScanResult) SentCount() int {
	n := 0
	for _, a := range r.Alerts {
		if a.Outcome == OutcomeSent {
			n++
		}
	}
	return n
}

// ScanRunResponse is the API view of a persisted scan run.
type ScanRunResponse struct {
	ID          uint        `json:"id"`
	RunID       string      `json:"run_id"`
	Trigger     string      `json:"trigger"`
	Status      string      `json:"status"`
	SignalCount int         `json:"signal_count"`
	AlertCount  int         `json:"alert_count"`
	SentCount   int         `json:"sent_count"`
	StartedAt   time.Time   `json:"started_at"`
	Duration    int64       `json:"duration_ms"`
	Error       string      `json:"error,omitempty"`
	Summary     *ScanResult `json:"summary,omitempty"`
}

// LastScan is the compact summary cached for the status page.
type LastScan struct {
	RunID       string    `json:"run_id"`
	Status      string    `json:"status"`
	SignalCount int       `json:"signal_count"`
	AlertCount  int       `json:"alert_count"`
	SentCount   int       `json:"sent_count"`
	DurationMs  int64     `json:"duration_ms"`
	FinishedAt  time.Time `json:"finished_at"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Mode     string `json:"mode"`
	Scanning bool   `json:"scanning"`
}
