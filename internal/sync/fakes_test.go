package sync

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parishkeep/parishsync/internal/logging"
	"github.com/parishkeep/parishsync/internal/models"
	"github.com/parishkeep/parishsync/internal/store/announcements"
	"github.com/parishkeep/parishsync/internal/store/attendance"
	"github.com/parishkeep/parishsync/internal/store/members"
	"github.com/parishkeep/parishsync/internal/store/meta"
	"github.com/parishkeep/parishsync/internal/store/notes"
	"github.com/parishkeep/parishsync/internal/store/sermons"
	"github.com/parishkeep/parishsync/internal/timex"

	_ "modernc.org/sqlite"
)

var errRemoteRejected = errors.New("remote store rejected the row")

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeProbe reports a fixed reachability answer.
type fakeProbe struct{ online bool }

func (p *fakeProbe) Reachable(context.Context) bool { return p.online }

// fakeRemote is an in-memory RemoteTable. Rows listed in reject fail every
// Upsert; gate, when set, blocks Upsert until the channel is closed.
type fakeRemote[T Record] struct {
	mu          stdsync.Mutex
	rows        map[string]T
	reject      map[string]bool
	stamp       time.Time
	gate        chan struct{}
	getCalls    int
	upsertCalls int
}

func newFakeRemote[T Record]() *fakeRemote[T] {
	return &fakeRemote[T]{
		rows:   make(map[string]T),
		reject: make(map[string]bool),
		stamp:  time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemote[T]) GetByID(_ context.Context, id string) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if r, ok := f.rows[id]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRemote[T]) Upsert(_ context.Context, rec T) (time.Time, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.reject[rec.RecordID()] {
		return time.Time{}, errRemoteRejected
	}
	f.rows[rec.RecordID()] = rec
	f.stamp = f.stamp.Add(time.Second)
	return f.stamp, nil
}

func (f *fakeRemote[T]) get(id string) (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	return r, ok
}

func (f *fakeRemote[T]) upserts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upsertCalls
}

// localStores bundles real SQLite-backed repositories over one in-memory
// database, mirroring the migration schema.
type localStores struct {
	db            *sql.DB
	notes         notes.Repository
	attendance    attendance.Repository
	members       members.Repository
	announcements announcements.Repository
	sermons       sermons.Repository
	meta          meta.Repository
}

func setupLocal(t *testing.T) *localStores {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE sermon_notes (
			id TEXT PRIMARY KEY,
			sermon_id TEXT,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			attachment_ref TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			is_favorite INTEGER NOT NULL DEFAULT 0,
			sync_status TEXT NOT NULL DEFAULT 'pending',
			server_updated_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE attendance (
			id TEXT PRIMARY KEY,
			member_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			occurs_on TEXT NOT NULL,
			status TEXT NOT NULL,
			note TEXT,
			recorded_by TEXT,
			sync_status TEXT NOT NULL DEFAULT 'pending',
			server_updated_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE members (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			photo_ref TEXT,
			server_updated_at TEXT NOT NULL
		);
		CREATE TABLE announcements (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			published_at TEXT NOT NULL,
			expires_at TEXT,
			server_updated_at TEXT NOT NULL
		);
		CREATE TABLE sermons (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			title TEXT NOT NULL,
			speaker TEXT NOT NULL DEFAULT '',
			delivered_on TEXT NOT NULL,
			media_ref TEXT,
			outline_ref TEXT,
			server_updated_at TEXT NOT NULL
		);
		CREATE TABLE sync_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);
	`)
	require.NoError(t, err)

	return &localStores{
		db:            db,
		notes:         notes.NewSQLiteRepository(db),
		attendance:    attendance.NewSQLiteRepository(db),
		members:       members.NewSQLiteRepository(db),
		announcements: announcements.NewSQLiteRepository(db),
		sermons:       sermons.NewSQLiteRepository(db),
		meta:          meta.NewSQLiteRepository(db),
	}
}

func pendingNote(t *testing.T, local *localStores, title string) *models.SermonNote {
	t.Helper()
	n := models.NewSermonNote("owner-1", title, "body of "+title)
	require.NoError(t, local.notes.Save(context.Background(), n))
	return n
}

func pendingMark(t *testing.T, local *localStores, status models.AttendanceStatus) *models.AttendanceMark {
	t.Helper()
	day := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	m := models.NewAttendanceMark("member-1", "service-1", timex.DateOf(day), status)
	require.NoError(t, local.attendance.Save(context.Background(), m))
	return m
}
