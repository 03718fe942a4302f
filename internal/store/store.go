// Package store bootstraps the local SQLite replica: it opens the database,
// applies the embedded schema migrations, and wires up the per-table
// repositories consumed by the sync engine and the UI layer.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/parishkeep/parishsync/internal/store/announcements"
	"github.com/parishkeep/parishsync/internal/store/attendance"
	"github.com/parishkeep/parishsync/internal/store/members"
	"github.com/parishkeep/parishsync/internal/store/meta"
	"github.com/parishkeep/parishsync/internal/store/migrations"
	"github.com/parishkeep/parishsync/internal/store/notes"
	"github.com/parishkeep/parishsync/internal/store/sermons"
)

// Repositories bundles every local-store repository over one database handle.
type Repositories struct {
	Notes         notes.Repository
	Attendance    attendance.Repository
	Members       members.Repository
	Announcements announcements.Repository
	Sermons       sermons.Repository
	Meta          meta.Repository
	DB            *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite database at dsn, runs
// migrations, and returns the repository set. The caller owns the returned
// DB handle and should close it on shutdown.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := &Repositories{
		Notes:         notes.NewSQLiteRepository(db),
		Attendance:    attendance.NewSQLiteRepository(db),
		Members:       members.NewSQLiteRepository(db),
		Announcements: announcements.NewSQLiteRepository(db),
		Sermons:       sermons.NewSQLiteRepository(db),
		Meta:          meta.NewSQLiteRepository(db),
		DB:            db,
	}
	return repos, nil
}
