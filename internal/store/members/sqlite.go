package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLiteRepository) UpsertFromRemote(ctx context.Context, m models.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, tenant_id, first_name, last_name, email, phone, role, photo_ref, server_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			role = excluded.role,
			photo_ref = excluded.photo_ref,
			server_updated_at = excluded.server_updated_at`,
		m.ID, m.TenantID, m.FirstName, m.LastName, m.Email, m.Phone, m.Role, m.PhotoRef,
		dbx.FormatTime(m.ServerUpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, first_name, last_name, email, phone, role, photo_ref, server_updated_at
		FROM members WHERE id=?`, id)
	m, err := scanMember(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, first_name, last_name, email, phone, role, photo_ref, server_updated_at
		FROM members ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select members: %w", err)
	}
	defer rows.Close()

	var result []models.Member
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanMember(scan func(dest ...any) error) (*models.Member, error) {
	var m models.Member
	var serverAt string
	err := scan(&m.ID, &m.TenantID, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
		&m.Role, &m.PhotoRef, &serverAt)
	if err != nil {
		return nil, err
	}
	if m.ServerUpdatedAt, err = dbx.ParseTime(serverAt); err != nil {
		return nil, err
	}
	return &m, nil
}
