package entity

import "time"

// SeenSignal records the identity of a raw feed event that has already produced a candidate.
type SeenSignal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SignalID  string    `gorm:"uniqueIndex;not null" json:"signal_id"`
	Source    string    `gorm:"not null" json:"source"`
	FirstSeen time.Time `gorm:"not null;index" json:"first_seen"`
}

func (SeenSignal) TableName() string {
	return "seen_signals"
}
