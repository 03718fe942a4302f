package sync

import (
	"time"

	"github.com/parishkeep/parishsync/internal/models"
)

// Record is the minimal surface a conflict policy needs from a syncable row.
// Both models.SermonNote and models.AttendanceMark satisfy it.
type Record interface {
	RecordID() string
	ModifiedAt() time.Time
}

// Action is the outcome of resolving one pending local record against its
// remote counterpart.
type Action int

const (
	// ActionInsert pushes the full local record; no remote copy exists.
	ActionInsert Action = iota
	// ActionPushLocal overwrites the existing remote copy with local fields.
	ActionPushLocal
	// ActionOverwriteLocal replaces the local row with the remote copy and
	// marks it synced. Tallied as a conflict.
	ActionOverwriteLocal
)

// Policy decides who wins when a pending local record meets its remote
// counterpart. remote is nil when the remote store has no row with that id.
// Policies are pure: they never touch either store.
type Policy[T Record] interface {
	Resolve(local T, remote *T) Action
}

// NotePolicy resolves owner-authored sermon notes. The authoring device is
// the source of truth, so an existing remote copy is overwritten without
// consulting its timestamp. A second device editing the same note is not an
// expected scenario; favoring the author avoids losing a note mid-composition.
type NotePolicy struct{}

func (NotePolicy) Resolve(local models.SermonNote, remote *models.SermonNote) Action {
	if remote == nil {
		return ActionInsert
	}
	return ActionPushLocal
}

// AttendancePolicy resolves shared attendance marks by last-write-wins on
// UpdatedAt. A strictly newer remote copy replaces the local row; otherwise
// the local row is pushed. Timestamp comparison gives a total order without
// vector clocks, acceptable because conflicting edits to the same mark are
// rare and low-stakes.
type AttendancePolicy struct{}

func (AttendancePolicy) Resolve(local models.AttendanceMark, remote *models.AttendanceMark) Action {
	if remote == nil {
		return ActionInsert
	}
	if remote.ModifiedAt().After(local.ModifiedAt()) {
		return ActionOverwriteLocal
	}
	return ActionPushLocal
}
