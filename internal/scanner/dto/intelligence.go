package dto

import "time"

// RankedTrader is a congress member scored by disclosed activity.
type RankedTrader struct {
	Name   string  `json:"name"`
	Trades int     `json:"trades"`
	Buys   int     `json:"buys"`
	Sells  int     `json:"sells"`
	Volume float64 `json:"volume"`
	Score  float64 `json:"score"`
}

// SourceHealth is the result of checking one feed.
type SourceHealth struct {
	Source      string  `json:"source"`
	Status      string  `json:"status"`
	LatencyMs   int64   `json:"latency_ms"`
	RecordCount int     `json:"record_count"`
	DataAgeHrs  float64 `json:"data_age_hours"`
	Stale       bool    `json:"stale"`
	Error       string  `json:"error,omitempty"`
}

// DiscoveredSource is a feed item announcing a possible new data source.
type DiscoveredSource struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Feed      string    `json:"feed"`
	Published time.Time `json:"published,omitempty"`
}

// IntelligenceReport is produced by each power trader refresh.
type IntelligenceReport struct {
	GeneratedAt    time.Time          `json:"generated_at"`
	PowerTraders   []RankedTrader     `json:"power_traders"`
	NewTraders     []string           `json:"new_traders"`
	SourceHealth   []SourceHealth     `json:"source_health"`
	Discoveries    []DiscoveredSource `json:"discoveries"`
	RegistryUpdate bool               `json:"registry_updated"`
}
