package announcements

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeep/parishsync/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE announcements (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			published_at TEXT NOT NULL,
			expires_at TEXT,
			server_updated_at TEXT NOT NULL
		);`)
	require.NoError(t, err)
	return db
}

func sample(id string, published time.Time) models.Announcement {
	return models.Announcement{
		ID:              id,
		TenantID:        "t1",
		Title:           "Potluck",
		Body:            "Bring a dish.",
		PublishedAt:     published,
		ServerUpdatedAt: published,
	}
}

func TestUpsertOverwrites(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	published := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	a := sample("a1", published)
	require.NoError(t, r.UpsertFromRemote(ctx, a))

	expires := published.Add(14 * 24 * time.Hour)
	a.Title = "Potluck moved"
	a.ExpiresAt = &expires
	require.NoError(t, r.UpsertFromRemote(ctx, a))

	got, err := r.ListRecent(ctx, published.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Potluck moved", got[0].Title)
	require.NotNil(t, got[0].ExpiresAt)
	assert.True(t, got[0].ExpiresAt.Equal(expires))
}

func TestListRecentWindow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	old := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	fresh := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	fresher := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	require.NoError(t, r.UpsertFromRemote(ctx, sample("a-old", old)))
	require.NoError(t, r.UpsertFromRemote(ctx, sample("a-fresh", fresh)))
	require.NoError(t, r.UpsertFromRemote(ctx, sample("a-fresher", fresher)))

	got, err := r.ListRecent(ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a-fresher", got[0].ID, "newest first")
	assert.Equal(t, "a-fresh", got[1].ID)
}
