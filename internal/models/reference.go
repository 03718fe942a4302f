package models

import (
	"time"

	"github.com/parishkeep/parishsync/internal/timex"
)

// The types below are read-only reference rows mirrored 1:1 from the remote
// store. They carry no SyncStatus: the pull routine overwrites them wholesale
// and nothing else may write them.

// Member is a church directory entry.
type Member struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	PhotoRef        *string   `json:"photo_ref,omitempty"`
	ServerUpdatedAt time.Time `json:"updated_at"`
}

// Announcement is a published congregation-wide notice.
type Announcement struct {
	ID              string     `json:"id"`
	TenantID        string     `json:"tenant_id"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	PublishedAt     time.Time  `json:"published_at"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	ServerUpdatedAt time.Time  `json:"updated_at"`
}

// Sermon is a reference document describing a delivered sermon.
type Sermon struct {
	ID              string     `json:"id"`
	TenantID        string     `json:"tenant_id"`
	Title           string     `json:"title"`
	Speaker         string     `json:"speaker"`
	DeliveredOn     timex.Date `json:"delivered_on"`
	MediaRef        *string    `json:"media_ref,omitempty"`
	OutlineRef      *string    `json:"outline_ref,omitempty"`
	ServerUpdatedAt time.Time  `json:"updated_at"`
}
