package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SentAlert is a nuclear alert that was delivered. (ticker, action, evidence_hash) is unique.
type SentAlert struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Ticker           string         `gorm:"not null;uniqueIndex:idx_sent_alerts_evidence" json:"ticker"`
	Action           string         `gorm:"not null;uniqueIndex:idx_sent_alerts_evidence" json:"action"`
	EvidenceHash     string         `gorm:"not null;uniqueIndex:idx_sent_alerts_evidence" json:"evidence_hash"`
	Confidence       int            `gorm:"not null" json:"confidence"`
	PrimarySources   pq.StringArray `gorm:"type:text[]" json:"primary_sources"`
	SecondarySources pq.StringArray `gorm:"type:text[]" json:"secondary_sources"`
	Evidence         datatypes.JSON `gorm:"type:jsonb" json:"evidence"`
	SentAt           time.Time      `gorm:"not null;index" json:"sent_at"`
}

func (SentAlert) TableName() string {
	return "sent_alerts"
}
