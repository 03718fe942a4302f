package attendance

import (
	"context"
	"time"

	"github.com/parishkeep/parishsync/internal/models"
)

// Repository describes persistence operations for attendance marks.
type Repository interface {
	// Save records a local create or edit; see notes.Repository.Save for the
	// pending/UpdatedAt semantics, which are identical.
	Save(ctx context.Context, a *models.AttendanceMark) error

	// GetByID returns a mark by its identifier, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.AttendanceMark, error)

	// ListByService returns all marks recorded for one service.
	ListByService(ctx context.Context, serviceID string) ([]models.AttendanceMark, error)

	// ListPending returns marks awaiting a push, oldest first.
	ListPending(ctx context.Context) ([]models.AttendanceMark, error)

	// MarkSynced stamps a confirmed round-trip.
	MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error

	// ReplaceFromRemote replaces the whole row with a newer remote copy and
	// marks it synced (the losing side of last-write-wins).
	ReplaceFromRemote(ctx context.Context, a models.AttendanceMark, serverUpdatedAt time.Time) error
}
