package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/parishkeep/parishsync/internal/dbx"
	"github.com/parishkeep/parishsync/internal/models"
)

// SQLiteRepository implements Repository over the local SQLite replica.
// It needs a *sql.DB (not a bare DBTX) because Save and ReplaceFromRemote
// open their own single-row transactions.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

const noteColumns = `id, sermon_id, owner_id, title, body, attachment_ref, tags,
	is_favorite, sync_status, server_updated_at, created_at, updated_at`

func (r *SQLiteRepository) Save(ctx context.Context, n *models.SermonNote) error {
	now := r.now().UTC()
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var prev string
		err := tx.QueryRowContext(ctx, `SELECT updated_at FROM sermon_notes WHERE id=?`, n.ID).Scan(&prev)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// first write, constructor stamps stand
		case err != nil:
			return fmt.Errorf("failed to read previous note stamp: %w", err)
		default:
			prevAt, perr := dbx.ParseTime(prev)
			if perr != nil {
				return perr
			}
			if prevAt.After(n.UpdatedAt) {
				n.UpdatedAt = prevAt
			}
		}
		n.Touch(now)

		tags, err := json.Marshal(n.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO sermon_notes (`+noteColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				sermon_id = excluded.sermon_id,
				title = excluded.title,
				body = excluded.body,
				attachment_ref = excluded.attachment_ref,
				tags = excluded.tags,
				is_favorite = excluded.is_favorite,
				sync_status = excluded.sync_status,
				updated_at = excluded.updated_at`,
			n.ID, n.SermonID, n.OwnerID, n.Title, n.Body, n.AttachmentRef, string(tags),
			n.IsFavorite, string(n.SyncStatus), dbx.FormatNullTime(n.ServerUpdatedAt),
			dbx.FormatTime(n.CreatedAt), dbx.FormatTime(n.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.SermonNote, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM sermon_notes WHERE id=?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListBySermon(ctx context.Context, sermonID string) ([]models.SermonNote, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM sermon_notes WHERE sermon_id=? ORDER BY created_at`, sermonID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.SermonNote, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM sermon_notes WHERE sync_status=? ORDER BY created_at`,
		string(models.StatusPending))
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.SermonNote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.SermonNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sermon_notes SET sync_status=?, server_updated_at=? WHERE id=?`,
		string(models.StatusSynced), dbx.FormatTime(serverUpdatedAt), id)
	if err != nil {
		return fmt.Errorf("failed to mark note synced: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceFromRemote(ctx context.Context, n models.SermonNote, serverUpdatedAt time.Time) error {
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sermon_notes WHERE id=?`, n.ID); err != nil {
			return fmt.Errorf("failed to replace note: %w", err)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sermon_notes (`+noteColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.SermonID, n.OwnerID, n.Title, n.Body, n.AttachmentRef, string(tags),
			n.IsFavorite, string(models.StatusSynced), dbx.FormatTime(serverUpdatedAt),
			dbx.FormatTime(n.CreatedAt), dbx.FormatTime(n.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to replace note: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.SermonNote, error) {
	var (
		n         models.SermonNote
		tags      string
		status    string
		serverAt  sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&n.ID, &n.SermonID, &n.OwnerID, &n.Title, &n.Body, &n.AttachmentRef,
		&tags, &n.IsFavorite, &status, &serverAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	n.SyncStatus = models.SyncStatus(status)
	if n.ServerUpdatedAt, err = dbx.ParseNullTime(serverAt); err != nil {
		return nil, err
	}
	if n.CreatedAt, err = dbx.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = dbx.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
