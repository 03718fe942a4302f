package notes

import (
	"context"
	"time"

	"github.com/parishkeep/parishsync/internal/models"
)

// Repository describes persistence operations for sermon notes.
// Implementations are backed by the local SQLite replica.
type Repository interface {
	// Save records a local create or edit: the note becomes pending and its
	// UpdatedAt stamp is advanced, never moving backwards relative to the
	// stored row.
	Save(ctx context.Context, n *models.SermonNote) error

	// GetByID returns a note by its identifier, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.SermonNote, error)

	// ListBySermon returns all notes attached to one sermon.
	ListBySermon(ctx context.Context, sermonID string) ([]models.SermonNote, error)

	// ListPending returns notes awaiting a push, oldest first.
	ListPending(ctx context.Context) ([]models.SermonNote, error)

	// MarkSynced stamps a confirmed round-trip: sync status becomes synced
	// and serverUpdatedAt records the remote store's last-write timestamp.
	MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error

	// ReplaceFromRemote replaces the whole row with the remote copy's fields
	// and marks it synced. Used when a conflict resolves in the remote's
	// favor.
	ReplaceFromRemote(ctx context.Context, n models.SermonNote, serverUpdatedAt time.Time) error
}
