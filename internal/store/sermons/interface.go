package sermons

import (
	"context"

	"github.com/parishkeep/parishsync/internal/models"
	"github.com/parishkeep/parishsync/internal/timex"
)

// Repository is the local mirror of sermon reference documents. Rows are
// written only by the pull routine.
type Repository interface {
	// UpsertFromRemote inserts the row or overwrites every mirrored field.
	UpsertFromRemote(ctx context.Context, s models.Sermon) error

	// GetByID returns a sermon, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Sermon, error)

	// ListSince returns cached sermons delivered on or after the given day,
	// newest first.
	ListSince(ctx context.Context, day timex.Date) ([]models.Sermon, error)
}
