package sqlite

import (
	"context"
	"database/sql"

	"github.com/dwellhq/dwell/internal/invites/domain"
)

type unitsRepo struct {
	db querier
}

func (r *unitsRepo) CreateUnit(ctx context.Context, u domain.Unit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO units (id, name, created_at, deleted_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, toUnix(u.CreatedAt), toUnixPtr(u.DeletedAt),
	)
	return mapConstraint(err)
}

func (r *unitsRepo) GetUnitByID(ctx context.Context, id string) (domain.Unit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, deleted_at
		FROM units
		WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	return scanUnit(row)
}

func scanUnit(row scannable) (domain.Unit, error) {
	var (
		u         domain.Unit
		createdAt int64
		deletedAt sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Name, &createdAt, &deletedAt); err != nil {
		return domain.Unit{}, mapNotFound(err)
	}
	u.CreatedAt = fromUnix(createdAt)
	u.DeletedAt = fromUnixPtr(deletedAt)
	return u, nil
}
