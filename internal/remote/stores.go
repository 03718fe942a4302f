package remote

import (
	"context"
	"time"

	"github.com/parishkeep/parishsync/internal/models"
)

// Table names on the remote store.
const (
	tableNotes         = "sermon_notes"
	tableAttendance    = "attendance"
	tableMembers       = "members"
	tableAnnouncements = "announcements"
	tableSermons       = "sermons"
)

// NoteStore accesses the sermon_notes table.
type NoteStore struct{ c *Client }

func NewNoteStore(c *Client) *NoteStore { return &NoteStore{c: c} }

// GetByID returns the remote copy of a note, or nil when none exists.
func (s *NoteStore) GetByID(ctx context.Context, id string) (*models.SermonNote, error) {
	var rows []models.SermonNote
	err := s.c.SelectRows(ctx, tableNotes, Query{Eq: map[string]string{"id": id}, Limit: 1}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Upsert pushes the full local note, overwriting any remote copy, and
// returns the server's resulting updated_at stamp.
func (s *NoteStore) Upsert(ctx context.Context, n models.SermonNote) (time.Time, error) {
	return s.c.UpsertRow(ctx, tableNotes, n)
}

// AttendanceStore accesses the attendance table.
type AttendanceStore struct{ c *Client }

func NewAttendanceStore(c *Client) *AttendanceStore { return &AttendanceStore{c: c} }

// GetByID returns the remote copy of a mark, or nil when none exists.
func (s *AttendanceStore) GetByID(ctx context.Context, id string) (*models.AttendanceMark, error) {
	var rows []models.AttendanceMark
	err := s.c.SelectRows(ctx, tableAttendance, Query{Eq: map[string]string{"id": id}, Limit: 1}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Upsert pushes the full local mark and returns the server stamp.
func (s *AttendanceStore) Upsert(ctx context.Context, a models.AttendanceMark) (time.Time, error) {
	return s.c.UpsertRow(ctx, tableAttendance, a)
}

// MemberStore reads the members directory.
type MemberStore struct{ c *Client }

func NewMemberStore(c *Client) *MemberStore { return &MemberStore{c: c} }

// ListByTenant returns the full directory for one congregation.
func (s *MemberStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Member, error) {
	var rows []models.Member
	err := s.c.SelectRows(ctx, tableMembers, Query{Eq: map[string]string{"tenant_id": tenantID}}, &rows)
	return rows, err
}

// AnnouncementStore reads published announcements.
type AnnouncementStore struct{ c *Client }

func NewAnnouncementStore(c *Client) *AnnouncementStore { return &AnnouncementStore{c: c} }

// ListRecent returns announcements published on or after since.
func (s *AnnouncementStore) ListRecent(ctx context.Context, tenantID string, since time.Time) ([]models.Announcement, error) {
	var rows []models.Announcement
	q := Query{
		Eq:  map[string]string{"tenant_id": tenantID},
		Gte: map[string]string{"published_at": since.UTC().Format(time.RFC3339)},
	}
	err := s.c.SelectRows(ctx, tableAnnouncements, q, &rows)
	return rows, err
}

// SermonStore reads sermon reference documents.
type SermonStore struct{ c *Client }

func NewSermonStore(c *Client) *SermonStore { return &SermonStore{c: c} }

// ListRecent returns sermons delivered on or after since (date granularity).
func (s *SermonStore) ListRecent(ctx context.Context, tenantID string, since time.Time) ([]models.Sermon, error) {
	var rows []models.Sermon
	q := Query{
		Eq:  map[string]string{"tenant_id": tenantID},
		Gte: map[string]string{"delivered_on": since.UTC().Format("2006-01-02")},
	}
	err := s.c.SelectRows(ctx, tableSermons, q, &rows)
	return rows, err
}
