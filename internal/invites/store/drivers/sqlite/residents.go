package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
)

type residentsRepo struct {
	db querier
}

const residentColumns = `id, user_id, unit_id, is_owner, is_active,
	moved_in_at, moved_out_at, created_at, updated_at`

// CreateResident inserts an occupancy row. The partial unique index on
// (user_id, unit_id) WHERE is_active = 1 rejects a second active row for
// the same pair; that constraint violation comes back as
// store.ErrAlreadyExists and is the final defense against duplicate
// residency races.
func (r *residentsRepo) CreateResident(ctx context.Context, res domain.Resident) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO residents (`+residentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.UserID,
		res.UnitID,
		res.IsOwner,
		res.IsActive,
		toUnix(res.MovedInAt),
		toUnixPtr(res.MovedOutAt),
		toUnix(res.CreatedAt),
		toUnix(res.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *residentsRepo) GetActiveResident(ctx context.Context, userID, unitID string) (domain.Resident, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+residentColumns+`
		FROM residents
		WHERE user_id = ? AND unit_id = ? AND is_active = 1`,
		userID, unitID,
	)
	return scanResident(row)
}

func (r *residentsRepo) DeactivateResident(ctx context.Context, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE residents
		SET is_active = 0, moved_out_at = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		toUnix(now), toUnix(now), id,
	)
	if err != nil {
		return mapBusy(err)
	}
	return requireRowsAffected(res)
}

func (r *residentsRepo) CountActiveByUnit(ctx context.Context, unitID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM residents
		WHERE unit_id = ? AND is_active = 1`,
		unitID,
	).Scan(&n)
	if err != nil {
		return 0, mapBusy(err)
	}
	return n, nil
}

func scanResident(row scannable) (domain.Resident, error) {
	var (
		res        domain.Resident
		movedInAt  int64
		movedOutAt sql.NullInt64
		createdAt  int64
		updatedAt  int64
	)
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.UnitID,
		&res.IsOwner,
		&res.IsActive,
		&movedInAt,
		&movedOutAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Resident{}, mapNotFound(err)
	}

	res.MovedInAt = fromUnix(movedInAt)
	res.MovedOutAt = fromUnixPtr(movedOutAt)
	res.CreatedAt = fromUnix(createdAt)
	res.UpdatedAt = fromUnix(updatedAt)
	return res, nil
}
