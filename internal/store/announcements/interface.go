package announcements

import (
	"context"
	"time"

	"github.com/parishkeep/parishsync/internal/models"
)

// Repository is the local mirror of published announcements. Rows are
// written only by the pull routine.
type Repository interface {
	// UpsertFromRemote inserts the row or overwrites every mirrored field.
	UpsertFromRemote(ctx context.Context, a models.Announcement) error

	// ListRecent returns cached announcements published on or after since,
	// newest first.
	ListRecent(ctx context.Context, since time.Time) ([]models.Announcement, error)
}
