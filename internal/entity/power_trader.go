package entity

import "time"

type PowerTrader struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Source    string    `gorm:"not null" json:"source"`
	Score     float64   `gorm:"not null" json:"score"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PowerTrader) TableName() string {
	return "power_traders"
}
