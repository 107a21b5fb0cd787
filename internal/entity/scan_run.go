package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// ScanStatus represents the final state of a scan run.
type ScanStatus string

const (
	ScanStatusRunning ScanStatus = "running"
	ScanStatusSuccess ScanStatus = "success"
	ScanStatusError   ScanStatus = "error"
)

// ScanRun is the persisted record of one scan.
type ScanRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RunID        string         `gorm:"uniqueIndex;not null" json:"run_id"`
	Trigger      string         `gorm:"not null" json:"trigger"`
	Status       ScanStatus     `gorm:"not null" json:"status"`
	SignalCount  int            `gorm:"not null" json:"signal_count"`
	AlertCount   int            `gorm:"not null" json:"alert_count"`
	SentCount    int            `gorm:"not null" json:"sent_count"`
	Summary      datatypes.JSON `gorm:"type:jsonb" json:"summary"`
	ErrorMessage sql.NullString `json:"error_message"`
	StartedAt    time.Time      `gorm:"not null;index" json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
}

func (ScanRun) TableName() string {
	return "scan_runs"
}
