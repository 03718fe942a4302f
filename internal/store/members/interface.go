package members

import (
	"context"

	"github.com/parishkeep/parishsync/internal/models"
)

// Repository is the local mirror of the members directory. Rows are written
// only by the pull routine; everything else reads.
type Repository interface {
	// UpsertFromRemote inserts the row or overwrites every mirrored field.
	UpsertFromRemote(ctx context.Context, m models.Member) error

	// GetByID returns a member, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Member, error)

	// List returns the whole cached directory, ordered by last name.
	List(ctx context.Context) ([]models.Member, error)
}
