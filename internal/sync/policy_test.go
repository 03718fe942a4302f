package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/parishkeep/parishsync/internal/models"
)

func TestNotePolicy(t *testing.T) {
	p := NotePolicy{}
	local := models.SermonNote{ID: "n1", UpdatedAt: time.Unix(100, 0)}

	assert.Equal(t, ActionInsert, p.Resolve(local, nil))

	// The remote timestamp is never consulted: even a much newer remote
	// copy loses to the authoring device.
	newer := models.SermonNote{ID: "n1", UpdatedAt: time.Unix(9000, 0)}
	assert.Equal(t, ActionPushLocal, p.Resolve(local, &newer))
}

func TestAttendancePolicy(t *testing.T) {
	p := AttendancePolicy{}
	at := func(sec int64) models.AttendanceMark {
		return models.AttendanceMark{ID: "a1", UpdatedAt: time.Unix(sec, 0)}
	}

	tests := []struct {
		name   string
		local  models.AttendanceMark
		remote *models.AttendanceMark
		want   Action
	}{
		{"no remote copy", at(100), nil, ActionInsert},
		{"remote newer", at(100), ptr(at(200)), ActionOverwriteLocal},
		{"local newer", at(200), ptr(at(100)), ActionPushLocal},
		{"equal stamps push local", at(100), ptr(at(100)), ActionPushLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Resolve(tt.local, tt.remote))
		})
	}
}

func ptr[T any](v T) *T { return &v }
