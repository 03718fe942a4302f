package members

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
CREATE TABLE members (
  id                TEXT PRIMARY KEY,
  tenant_id         TEXT NOT NULL,
  first_name        TEXT NOT NULL,
  last_name         TEXT NOT NULL,
  email             TEXT NOT NULL DEFAULT '',
  phone             TEXT NOT NULL DEFAULT '',
  role              TEXT NOT NULL DEFAULT '',
  photo_ref         TEXT,
  server_updated_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func member(id, first, last string) models.Member {
	return models.Member{
		ID:              id,
		TenantID:        "t1",
		FirstName:       first,
		LastName:        last,
		Email:           first + "@example.org",
		ServerUpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpsertFromRemote_InsertAndOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	m := member("m1", "Ana", "Silva")
	require.NoError(t, r.UpsertFromRemote(ctx, m))

	m.Phone = "555-0101"
	m.ServerUpdatedAt = m.ServerUpdatedAt.Add(time.Hour)
	require.NoError(t, r.UpsertFromRemote(ctx, m))

	got, err := r.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "555-0101", got.Phone)
	assert.True(t, got.ServerUpdatedAt.Equal(m.ServerUpdatedAt))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate rows")
}

func TestList_OrderedByName(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.UpsertFromRemote(ctx, member("m1", "Carlos", "Zimmer")))
	require.NoError(t, r.UpsertFromRemote(ctx, member("m2", "Ana", "Alves")))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alves", all[0].LastName)
	assert.Equal(t, "Zimmer", all[1].LastName)
}

func TestGetByID_Absent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
