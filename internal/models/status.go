// Package models defines the locally replicated record types and their
// synchronization lifecycle fields.
//
// Records fall into three categories with different ownership semantics:
//
//   - SermonNote: owner-authored, the authoring device wins on conflict.
//   - AttendanceMark: shared administrative data, last-write-wins by the
//     client-authoritative UpdatedAt stamp; ties favor the remote copy.
//   - Member, Announcement, Sermon: read-only reference rows mirrored from
//     the remote store and never mutated locally.
package models

// SyncStatus marks whether a locally replicated row has changes that the
// remote store has not confirmed yet.
type SyncStatus string

const (
	// StatusSynced means the row matches the remote store as of
	// ServerUpdatedAt.
	StatusSynced SyncStatus = "synced"

	// StatusPending means the row has local changes awaiting a push.
	StatusPending SyncStatus = "pending"

	// StatusConflict is reserved for rows that need manual attention.
	// The current policies resolve every divergence automatically (conflicts
	// are tallied, the row ends up synced), so no flow sets this value today.
	StatusConflict SyncStatus = "conflict"
)
