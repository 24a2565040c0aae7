// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default published-sheet identifiers. Each table of the sales workbook is an
// independent CSV export addressed by the workbook base URL plus a gid.
const (
	defaultBaseSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRItUGpVy9ifoEA9hKEUyJvfdcCQ5UuFmDchpDiZ-gV9zR6gIr7uYZ1lvTWfPvpaxI3Z7TzzywTqypS/pub?"

	defaultWeeklyUploadsGID = "1498781890"
	defaultTalkTimeGID      = "1050305791"
	defaultConversionGID    = "653460525"
	defaultLeadsGrabbedGID  = "1664565885"
	defaultLeadsBehindGID   = "477962305"
	defaultRepMonthlyGID    = "2121407859"
	defaultRepDailyGID      = "918041095"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RefreshIntervalSeconds is the period of the automatic refresh cycle.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// FetchTimeoutSeconds bounds a single table fetch.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// BaseSheetURL is the published workbook base; per-table gids are
	// appended as query parameters.
	BaseSheetURL string `koanf:"base_sheet_url"`

	// Per-table export identifiers, each independently overridable.
	WeeklyUploadsGID string `koanf:"weekly_uploads_gid"`
	TalkTimeGID      string `koanf:"talk_time_gid"`
	ConversionGID    string `koanf:"conversion_gid"`
	LeadsGrabbedGID  string `koanf:"leads_grabbed_gid"`
	LeadsBehindGID   string `koanf:"leads_behind_gid"`
	RepMonthlyGID    string `koanf:"rep_monthly_gid"`
	RepDailyGID      string `koanf:"rep_daily_gid"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9090",
		RefreshIntervalSeconds: 30,
		FetchTimeoutSeconds:    20,
		BaseSheetURL:           defaultBaseSheetURL,
		WeeklyUploadsGID:       defaultWeeklyUploadsGID,
		TalkTimeGID:            defaultTalkTimeGID,
		ConversionGID:          defaultConversionGID,
		LeadsGrabbedGID:        defaultLeadsGrabbedGID,
		LeadsBehindGID:         defaultLeadsBehindGID,
		RepMonthlyGID:          defaultRepMonthlyGID,
		RepDailyGID:            defaultRepDailyGID,
	}
}
