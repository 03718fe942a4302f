package config

import "time"

// Config holds runtime settings for the ParishSync client.
//
// Units: all *Timeout/Interval fields are time.Duration values; the window
// fields are whole days.
type Config struct {
	// RemoteBaseURL is the base URL of the remote row store REST endpoint,
	// e.g. https://api.parishkeep.app/rest/v1.
	RemoteBaseURL string

	// AuthRefreshURL is the endpoint exchanging a refresh token for a new
	// access token.
	AuthRefreshURL string

	// AccessToken and RefreshToken are supplied by the host application's
	// session layer; session management itself lives outside the engine.
	AccessToken  string
	RefreshToken string

	// DatabasePath is the SQLite file holding the local replica.
	DatabasePath string

	// TenantID scopes reference-data pulls to one congregation.
	TenantID string

	// SyncInterval is how often the background loop invokes SyncAll.
	SyncInterval time.Duration

	// OnlineCheckTimeout bounds a single reachability probe.
	OnlineCheckTimeout time.Duration

	// RemoteCallTimeout bounds each individual remote store call. A timeout
	// is treated like any other per-record failure: the row stays pending.
	RemoteCallTimeout time.Duration

	// AnnouncementWindowDays and SermonWindowDays bound reference-data pulls
	// to a trailing window, keeping payloads small on high-volume tables.
	AnnouncementWindowDays int
	SermonWindowDays       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteBaseURL = "http://127.0.0.1:8080/rest/v1"
	c.AuthRefreshURL = "http://127.0.0.1:8080/auth/v1/token"
	c.DatabasePath = "parish.db"
	c.SyncInterval = 60 * time.Second
	c.OnlineCheckTimeout = 3 * time.Second
	c.RemoteCallTimeout = 10 * time.Second
	c.AnnouncementWindowDays = 30
	c.SermonWindowDays = 90
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
