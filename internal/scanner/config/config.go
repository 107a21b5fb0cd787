package config

import (
	"fmt"
	"time"

	"golang-insider-scanner/pkg/config"

	"github.com/go-playground/validator/v10"
)

// Scanner holds scan scheduling and retention settings.
type Scanner struct {
	Schedule          string        `mapstructure:"schedule" validate:"required"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	LookbackDays      int           `mapstructure:"lookback_days" validate:"gt=0"`
	SeenRetentionDays int           `mapstructure:"seen_retention_days" validate:"gt=0"`
	SentRetentionDays int           `mapstructure:"sent_retention_days" validate:"gt=0"`
	RetentionSchedule string        `mapstructure:"retention_schedule" validate:"required"`
	PowerTraderTTL    time.Duration `mapstructure:"power_trader_ttl"`
}

// Policy holds the aggregation and alert-gate constants.
type Policy struct {
	NuclearConfidence  float64 `mapstructure:"nuclear_confidence" validate:"gte=0,lte=100"`
	MaxAlertsPerDay    int     `mapstructure:"max_alerts_per_day" validate:"gte=0"`
	PrimaryWeight      float64 `mapstructure:"primary_weight" validate:"gt=0"`
	SecondaryWeight    float64 `mapstructure:"secondary_weight" validate:"gte=0"`
	MinDirectionRatio  float64 `mapstructure:"min_direction_ratio" validate:"gte=0,lte=1"`
	PowerTraderBonus   float64 `mapstructure:"power_trader_bonus"`
	ClusterBonus       float64 `mapstructure:"cluster_bonus"`
	MultiPrimaryBonus  float64 `mapstructure:"multi_primary_bonus"`
	ConfidenceCap      float64 `mapstructure:"confidence_cap" validate:"gt=0,lte=100"`
	StrongNetThreshold float64 `mapstructure:"strong_net_threshold" validate:"gt=0"`
}

// Congress holds the disclosure feed settings.
type Congress struct {
	Enabled             bool    `mapstructure:"enabled"`
	URL                 string  `mapstructure:"url" validate:"omitempty,url"`
	MinAmount           float64 `mapstructure:"min_amount"`
	PowerConfidence     int     `mapstructure:"power_confidence"`
	BaseConfidence      int     `mapstructure:"base_confidence"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute" validate:"gt=0"`
}

// SEC holds the insider filing feed settings.
type SEC struct {
	Enabled             bool    `mapstructure:"enabled"`
	URL                 string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey              string  `mapstructure:"api_key"`
	QueryMinShares      int     `mapstructure:"query_min_shares"`
	PageSize            int     `mapstructure:"page_size" validate:"gt=0"`
	MinValue            float64 `mapstructure:"min_value"`
	OfficerConfidence   int     `mapstructure:"officer_confidence"`
	BaseConfidence      int     `mapstructure:"base_confidence"`
	ClusterMinSize      int     `mapstructure:"cluster_min_size" validate:"gt=0"`
	ClusterConfidence   int     `mapstructure:"cluster_confidence"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute" validate:"gt=0"`
}

// Polymarket holds the prediction market feed settings.
type Polymarket struct {
	Enabled             bool    `mapstructure:"enabled"`
	URL                 string  `mapstructure:"url" validate:"omitempty,url"`
	MinVolume           float64 `mapstructure:"min_volume"`
	Confidence          int     `mapstructure:"confidence"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute" validate:"gt=0"`
}

// Sources groups every feed adapter configuration.
type Sources struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	Congress       Congress      `mapstructure:"congress"`
	SEC            SEC           `mapstructure:"sec"`
	Polymarket     Polymarket    `mapstructure:"polymarket"`
}

// Notifier selects the alert delivery channel.
type Notifier struct {
	Provider string `mapstructure:"provider" validate:"oneof=email telegram log"`
}

// SMTP holds the mail transport settings.
type SMTP struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	FromName string        `mapstructure:"from_name"`
	To       string        `mapstructure:"to"`
	UseTLS   bool          `mapstructure:"use_tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Auth holds the credentials guarding the HTTP surface.
type Auth struct {
	ScanToken string `mapstructure:"scan_token"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
}

// Ledger holds paper trading settings.
type Ledger struct {
	PaperTrading bool `mapstructure:"paper_trading"`
	RecentTrades int  `mapstructure:"recent_trades" validate:"gt=0"`
}

// Intelligence holds the weekly power trader refresh settings.
type Intelligence struct {
	Enabled         bool     `mapstructure:"enabled"`
	Schedule        string   `mapstructure:"schedule"`
	LookbackDays    int      `mapstructure:"lookback_days" validate:"gt=0"`
	MinTrades       int      `mapstructure:"min_trades"`
	QualifyTrades   int      `mapstructure:"qualify_trades"`
	QualifyVolume   float64  `mapstructure:"qualify_volume"`
	TopN            int      `mapstructure:"top_n" validate:"gt=0"`
	DiscoveryFeeds  []string `mapstructure:"discovery_feeds" validate:"dive,url"`
	DiscoveryLimit  int      `mapstructure:"discovery_limit"`
	StaleAfterHours float64  `mapstructure:"stale_after_hours"`
}

// Config holds the full configuration for the scanner service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Scanner      Scanner         `mapstructure:"scanner"`
	Policy       Policy          `mapstructure:"policy"`
	Sources      Sources         `mapstructure:"sources"`
	Notifier     Notifier        `mapstructure:"notifier"`
	SMTP         SMTP            `mapstructure:"smtp"`
	Telegram     Telegram        `mapstructure:"telegram"`
	Auth         Auth            `mapstructure:"auth"`
	Ledger       Ledger          `mapstructure:"ledger"`
	Intelligence Intelligence    `mapstructure:"intelligence"`
}

// Defaults returns every default value keyed by its viper path.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":      "insider-scanner",
		"app.env":       "development",
		"app.time_zone": "America/New_York",

		"logger.level":    "info",
		"logger.encoding": "json",

		"database.host":     "localhost",
		"database.port":     5432,
		"database.user":     "postgres",
		"database.password": "",
		"database.name":     "insider_scanner",
		"database.ssl_mode": "disable",

		"redis.host":   "localhost",
		"redis.port":   6379,
		"redis.prefix": "insider",

		"api.port": 8080,

		"scanner.schedule":            "*/30 * * * *",
		"scanner.timeout":             4 * time.Minute,
		"scanner.lookback_days":       7,
		"scanner.seen_retention_days": 7,
		"scanner.sent_retention_days": 30,
		"scanner.retention_schedule":  "15 3 * * *",
		"scanner.power_trader_ttl":    10 * time.Minute,

		"policy.nuclear_confidence":   85.0,
		"policy.max_alerts_per_day":   10,
		"policy.primary_weight":       1.0,
		"policy.secondary_weight":     0.3,
		"policy.min_direction_ratio":  0.6,
		"policy.power_trader_bonus":   10.0,
		"policy.cluster_bonus":        15.0,
		"policy.multi_primary_bonus":  10.0,
		"policy.confidence_cap":       99.0,
		"policy.strong_net_threshold": 150.0,

		"sources.request_timeout": 15 * time.Second,

		"sources.congress.enabled":                true,
		"sources.congress.url":                    "https://house-stock-watcher-data.s3-us-west-2.amazonaws.com/data/all_transactions.json",
		"sources.congress.min_amount":             15000.0,
		"sources.congress.power_confidence":       95,
		"sources.congress.base_confidence":        80,
		"sources.congress.max_request_per_minute": 30,

		"sources.sec.enabled":                true,
		"sources.sec.url":                    "https://api.sec-api.io/insider-trading",
		"sources.sec.api_key":                "",
		"sources.sec.query_min_shares":       5000,
		"sources.sec.page_size":              50,
		"sources.sec.min_value":              100000.0,
		"sources.sec.officer_confidence":     85,
		"sources.sec.base_confidence":        75,
		"sources.sec.cluster_min_size":       3,
		"sources.sec.cluster_confidence":     90,
		"sources.sec.max_request_per_minute": 10,

		"sources.polymarket.enabled":                true,
		"sources.polymarket.url":                    "https://gamma-api.polymarket.com/markets?active=true&limit=50",
		"sources.polymarket.min_volume":             100000.0,
		"sources.polymarket.confidence":             70,
		"sources.polymarket.max_request_per_minute": 30,

		"notifier.provider": "email",

		"smtp.host":      "smtp.gmail.com",
		"smtp.port":      587,
		"smtp.username":  "",
		"smtp.password":  "",
		"smtp.from":      "",
		"smtp.from_name": "Insider Scanner",
		"smtp.to":        "",
		"smtp.use_tls":   false,
		"smtp.timeout":   20 * time.Second,

		"telegram.bot_token": "",
		"telegram.chat_id":   0,

		"auth.scan_token": "",
		"auth.username":   "admin",
		"auth.password":   "",

		"ledger.paper_trading": true,
		"ledger.recent_trades": 10,

		"intelligence.enabled":           true,
		"intelligence.schedule":          "0 0 * * 0",
		"intelligence.lookback_days":     365,
		"intelligence.min_trades":        5,
		"intelligence.qualify_trades":    10,
		"intelligence.qualify_volume":    500000.0,
		"intelligence.top_n":             15,
		"intelligence.discovery_feeds":   []string{"https://www.reddit.com/r/algotrading/.rss", "https://hnrss.org/newest?q=api"},
		"intelligence.discovery_limit":   10,
		"intelligence.stale_after_hours": 168.0,
	}
}

// Load loads the scanner configuration from the given path and validates it.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and cross-field requirements.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Sources.Congress.Enabled && cfg.Sources.Congress.URL == "" {
		return fmt.Errorf("invalid configuration: sources.congress.url is required when enabled")
	}
	if cfg.Sources.SEC.Enabled && cfg.Sources.SEC.URL == "" {
		return fmt.Errorf("invalid configuration: sources.sec.url is required when enabled")
	}
	if cfg.Sources.Polymarket.Enabled && cfg.Sources.Polymarket.URL == "" {
		return fmt.Errorf("invalid configuration: sources.polymarket.url is required when enabled")
	}
	switch cfg.Notifier.Provider {
	case "email":
		if cfg.SMTP.Host == "" || cfg.SMTP.To == "" {
			return fmt.Errorf("invalid configuration: smtp.host and smtp.to are required for the email notifier")
		}
	case "telegram":
		if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
			return fmt.Errorf("invalid configuration: telegram.bot_token and telegram.chat_id are required for the telegram notifier")
		}
	}
	return nil
}
