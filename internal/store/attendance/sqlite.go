package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/parishkeep/parishsync/internal/dbx"
	"github.com/parishkeep/parishsync/internal/models"
)

// SQLiteRepository implements Repository over the local SQLite replica.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

const markColumns = `id, member_id, service_id, occurs_on, status, note, recorded_by,
	sync_status, server_updated_at, created_at, updated_at`

func (r *SQLiteRepository) Save(ctx context.Context, a *models.AttendanceMark) error {
	now := r.now().UTC()
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var prev string
		err := tx.QueryRowContext(ctx, `SELECT updated_at FROM attendance WHERE id=?`, a.ID).Scan(&prev)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to read previous mark stamp: %w", err)
		default:
			prevAt, perr := dbx.ParseTime(prev)
			if perr != nil {
				return perr
			}
			if prevAt.After(a.UpdatedAt) {
				a.UpdatedAt = prevAt
			}
		}
		a.Touch(now)

		_, err = tx.ExecContext(ctx, `
			INSERT INTO attendance (`+markColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				member_id = excluded.member_id,
				service_id = excluded.service_id,
				occurs_on = excluded.occurs_on,
				status = excluded.status,
				note = excluded.note,
				recorded_by = excluded.recorded_by,
				sync_status = excluded.sync_status,
				updated_at = excluded.updated_at`,
			a.ID, a.MemberID, a.ServiceID, a.OccursOn, string(a.Status), a.Note, a.RecordedBy,
			string(a.SyncStatus), dbx.FormatNullTime(a.ServerUpdatedAt),
			dbx.FormatTime(a.CreatedAt), dbx.FormatTime(a.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to save attendance mark: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.AttendanceMark, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+markColumns+` FROM attendance WHERE id=?`, id)
	a, err := scanMark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance mark: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) ListByService(ctx context.Context, serviceID string) ([]models.AttendanceMark, error) {
	return r.list(ctx, `SELECT `+markColumns+` FROM attendance WHERE service_id=? ORDER BY created_at`, serviceID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.AttendanceMark, error) {
	return r.list(ctx, `SELECT `+markColumns+` FROM attendance WHERE sync_status=? ORDER BY created_at`,
		string(models.StatusPending))
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.AttendanceMark, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select attendance marks: %w", err)
	}
	defer rows.Close()

	var result []models.AttendanceMark
	for rows.Next() {
		a, err := scanMark(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, serverUpdatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attendance SET sync_status=?, server_updated_at=? WHERE id=?`,
		string(models.StatusSynced), dbx.FormatTime(serverUpdatedAt), id)
	if err != nil {
		return fmt.Errorf("failed to mark attendance synced: %w", err)
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

func (r *SQLiteRepository) ReplaceFromRemote(ctx context.Context, a models.AttendanceMark, serverUpdatedAt time.Time) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE id=?`, a.ID); err != nil {
			return fmt.Errorf("failed to replace attendance mark: %w", err)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attendance (`+markColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.MemberID, a.ServiceID, a.OccursOn, string(a.Status), a.Note, a.RecordedBy,
			string(models.StatusSynced), dbx.FormatTime(serverUpdatedAt),
			dbx.FormatTime(a.CreatedAt), dbx.FormatTime(a.UpdatedAt))
		if err != nil {
			return fmt.Errorf("failed to replace attendance mark: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMark(row rowScanner) (*models.AttendanceMark, error) {
	var (
		a         models.AttendanceMark
		status    string
		syncState string
		serverAt  sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&a.ID, &a.MemberID, &a.ServiceID, &a.OccursOn, &status, &a.Note,
		&a.RecordedBy, &syncState, &serverAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	a.Status = models.AttendanceStatus(status)
	a.SyncStatus = models.SyncStatus(syncState)
	if a.ServerUpdatedAt, err = dbx.ParseNullTime(serverAt); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = dbx.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = dbx.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
