package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/parishkeep/parishsync/internal/flagx"
	"github.com/parishkeep/parishsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	RemoteBaseURL          string         `json:"remote_base_url"`
	AuthRefreshURL         string         `json:"auth_refresh_url"`
	AccessToken            string         `json:"access_token"`
	RefreshToken           string         `json:"refresh_token"`
	DatabasePath           string         `json:"database_path"`
	TenantID               string         `json:"tenant_id"`
	SyncInterval           timex.Duration `json:"sync_interval"`
	OnlineCheckTimeout     timex.Duration `json:"online_check_timeout"`
	RemoteCallTimeout      timex.Duration `json:"remote_call_timeout"`
	AnnouncementWindowDays int            `json:"announcement_window_days"`
	SermonWindowDays       int            `json:"sermon_window_days"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path is resolved from the -c/-config flags via
// flagx.JsonConfigFlags; when absent, no JSON is loaded. Read or unmarshal
// errors panic (the caller may recover); zero values in the file leave the
// corresponding Config field untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.AuthRefreshURL != "" {
		cfg.AuthRefreshURL = jc.AuthRefreshURL
	}
	if jc.AccessToken != "" {
		cfg.AccessToken = jc.AccessToken
	}
	if jc.RefreshToken != "" {
		cfg.RefreshToken = jc.RefreshToken
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.TenantID != "" {
		cfg.TenantID = jc.TenantID
	}
	if jc.SyncInterval.Duration != 0 {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.OnlineCheckTimeout.Duration != 0 {
		cfg.OnlineCheckTimeout = time.Duration(jc.OnlineCheckTimeout.Duration)
	}
	if jc.RemoteCallTimeout.Duration != 0 {
		cfg.RemoteCallTimeout = time.Duration(jc.RemoteCallTimeout.Duration)
	}
	if jc.AnnouncementWindowDays != 0 {
		cfg.AnnouncementWindowDays = jc.AnnouncementWindowDays
	}
	if jc.SermonWindowDays != 0 {
		cfg.SermonWindowDays = jc.SermonWindowDays
	}
}
