package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson_OverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"remote_base_url": "https://api.example.org/rest/v1",
		"tenant_id": "grace",
		"sync_interval": "10s",
		"remote_call_timeout": "7s",
		"announcement_window_days": 14
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://api.example.org/rest/v1", cfg.RemoteBaseURL)
	assert.Equal(t, "grace", cfg.TenantID)
	assert.Equal(t, 10*time.Second, cfg.SyncInterval)
	assert.Equal(t, 7*time.Second, cfg.RemoteCallTimeout)
	assert.Equal(t, 14, cfg.AnnouncementWindowDays)
	// untouched fields keep their defaults
	assert.Equal(t, "parish.db", cfg.DatabasePath)
	assert.Equal(t, 90, cfg.SermonWindowDays)
}

func TestParseJson_NoFileFlag_NoChange(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app"}

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)
	assert.Equal(t, before, *cfg)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJson(cfg) })
}
