package models

import (
	"time"

	"github.com/google/uuid"
)

// SermonNote is a personal note authored on this device, optionally attached
// to a sermon. The authoring device is the source of truth while the note is
// pending; on conflict the local copy always overwrites the remote one.
//
// JSON tags describe the remote store row. SyncStatus and ServerUpdatedAt are
// local bookkeeping and never cross the wire.
type SermonNote struct {
	ID              string     `json:"id"`
	SermonID        *string    `json:"sermon_id,omitempty"`
	OwnerID         string     `json:"owner_id"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	AttachmentRef   *string    `json:"attachment_ref,omitempty"`
	Tags            []string   `json:"tags"`
	IsFavorite      bool       `json:"is_favorite"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	SyncStatus      SyncStatus `json:"-"`
	ServerUpdatedAt *time.Time `json:"-"`
}

// NewSermonNote creates a pending note with a client-generated identifier.
// The id is stable across pushes, which makes remote inserts idempotent when
// retried after an ambiguous failure.
func NewSermonNote(ownerID, title, body string) *SermonNote {
	now := time.Now().UTC()
	return &SermonNote{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Title:      title,
		Body:       body,
		Tags:       []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncStatus: StatusPending,
	}
}

// Touch records a local mutation: the note becomes pending and UpdatedAt is
// stamped with now, never moving backwards even if the wall clock stepped.
func (n *SermonNote) Touch(now time.Time) {
	if now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
	n.SyncStatus = StatusPending
}

// RecordID returns the client-generated identifier.
func (n SermonNote) RecordID() string { return n.ID }

// ModifiedAt returns the client-authoritative modification stamp.
func (n SermonNote) ModifiedAt() time.Time { return n.UpdatedAt }
