// Package config loads runtime settings for the ParishSync client.
//
// Sources are applied in order, later ones overriding earlier ones:
//
//  1. Built-in defaults (Config.LoadDefaults).
//  2. A JSON file given via -c/-config, e.g.:
//
//     {
//     "remote_base_url": "https://api.parishkeep.app/rest/v1",
//     "database_path": "parish.db",
//     "tenant_id": "grace-fellowship",
//     "sync_interval": "60s",
//     "remote_call_timeout": "10s"
//     }
//
//  3. Command-line flags: -a (remote URL), -d (database path),
//     -t (tenant id), -i (sync interval, seconds).
//
// Key Types
//
//   - type Config     — runtime settings consumed by cmd/parishsync
//   - type JsonConfig — JSON DTO with timex.Duration fields
package config
