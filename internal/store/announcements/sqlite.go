package announcements

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/parishkeep/parishsync/internal/dbx"
	"github.com/parishkeep/parishsync/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertFromRemote(ctx context.Context, a models.Announcement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO announcements (id, tenant_id, title, body, published_at, expires_at, server_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			title = excluded.title,
			body = excluded.body,
			published_at = excluded.published_at,
			expires_at = excluded.expires_at,
			server_updated_at = excluded.server_updated_at`,
		a.ID, a.TenantID, a.Title, a.Body, dbx.FormatTime(a.PublishedAt),
		dbx.FormatNullTime(a.ExpiresAt), dbx.FormatTime(a.ServerUpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert announcement: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, since time.Time) ([]models.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, title, body, published_at, expires_at, server_updated_at
		FROM announcements WHERE published_at >= ? ORDER BY published_at DESC`,
		dbx.FormatTime(since))
	if err != nil {
		return nil, fmt.Errorf("failed to select announcements: %w", err)
	}
	defer rows.Close()

	var result []models.Announcement
	for rows.Next() {
		var (
			a           models.Announcement
			publishedAt string
			expiresAt   sql.NullString
			serverAt    string
		)
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Title, &a.Body, &publishedAt, &expiresAt, &serverAt); err != nil {
			return nil, err
		}
		if a.PublishedAt, err = dbx.ParseTime(publishedAt); err != nil {
			return nil, err
		}
		if a.ExpiresAt, err = dbx.ParseNullTime(expiresAt); err != nil {
			return nil, err
		}
		if a.ServerUpdatedAt, err = dbx.ParseTime(serverAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
