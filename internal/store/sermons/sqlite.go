package sermons

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parishkeep/parishsync/internal/dbx"
	"github.com/parishkeep/parishsync/internal/models"
	"github.com/parishkeep/parishsync/internal/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertFromRemote(ctx context.Context, s models.Sermon) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sermons (id, tenant_id, title, speaker, delivered_on, media_ref, outline_ref, server_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			title = excluded.title,
			speaker = excluded.speaker,
			delivered_on = excluded.delivered_on,
			media_ref = excluded.media_ref,
			outline_ref = excluded.outline_ref,
			server_updated_at = excluded.server_updated_at`,
		s.ID, s.TenantID, s.Title, s.Speaker, s.DeliveredOn, s.MediaRef, s.OutlineRef,
		dbx.FormatTime(s.ServerUpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert sermon: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Sermon, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, title, speaker, delivered_on, media_ref, outline_ref, server_updated_at
		FROM sermons WHERE id=?`, id)
	s, err := scanSermon(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sermon: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListSince(ctx context.Context, day timex.Date) ([]models.Sermon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, title, speaker, delivered_on, media_ref, outline_ref, server_updated_at
		FROM sermons WHERE delivered_on >= ? ORDER BY delivered_on DESC`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to select sermons: %w", err)
	}
	defer rows.Close()

	var result []models.Sermon
	for rows.Next() {
		s, err := scanSermon(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanSermon(scan func(dest ...any) error) (*models.Sermon, error) {
	var s models.Sermon
	var serverAt string
	err := scan(&s.ID, &s.TenantID, &s.Title, &s.Speaker, &s.DeliveredOn,
		&s.MediaRef, &s.OutlineRef, &serverAt)
	if err != nil {
		return nil, err
	}
	if s.ServerUpdatedAt, err = dbx.ParseTime(serverAt); err != nil {
		return nil, err
	}
	return &s, nil
}
