package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/store"
)

type invitesRepo struct {
	db querier
}

const inviteColumns = `id, unit_id, token, email, expires_at, is_active,
	max_uses, used_count, created_by, created_at, updated_at, deleted_at`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invites (`+inviteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.UnitID,
		inv.Token,
		toNullString(inv.Email),
		toUnix(inv.ExpiresAt),
		inv.IsActive,
		toNullInt64(inv.MaxUses),
		inv.UsedCount,
		inv.CreatedBy,
		toUnix(inv.CreatedAt),
		toUnix(inv.UpdatedAt),
		toUnixPtr(inv.DeletedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByToken(ctx context.Context, token string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE token = ? AND deleted_at IS NULL`,
		token,
	)
	return scanInvite(row)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	return scanInvite(row)
}

func (r *invitesRepo) TokenExists(ctx context.Context, token string) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invites
		WHERE token = ? AND deleted_at IS NULL`,
		token,
	).Scan(&n)
	if err != nil {
		return false, mapBusy(err)
	}
	return n > 0, nil
}

// ClaimInviteSlot performs the redemption compare-and-swap. The WHERE
// clause re-checks active/unexpired/capacity against the latest committed
// row state, and SQLite serializes writers to the row, so at most
// max_uses claims can ever succeed no matter how many writers race. The
// is_active flip to "exhausted" happens in the same statement as the
// final increment so no reader ever observes a full invite still marked
// active.
func (r *invitesRepo) ClaimInviteSlot(ctx context.Context, token string, now time.Time) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE invites
		SET used_count = used_count + 1,
		    is_active = CASE
		        WHEN max_uses IS NOT NULL AND used_count + 1 >= max_uses THEN 0
		        ELSE is_active
		    END,
		    updated_at = ?2
		WHERE token = ?1
		  AND deleted_at IS NULL
		  AND is_active = 1
		  AND expires_at >= ?2
		  AND (max_uses IS NULL OR used_count < max_uses)
		RETURNING `+inviteColumns,
		token, toUnix(now),
	)
	return scanInvite(row)
}

func (r *invitesRepo) RevokeInvite(ctx context.Context, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invites
		SET is_active = 0, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL AND is_active = 1`,
		toUnix(now), id,
	)
	if err != nil {
		return mapBusy(err)
	}
	return requireRowsAffected(res)
}

func (r *invitesRepo) SoftDeleteInvite(ctx context.Context, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invites
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		toUnix(now), toUnix(now), id,
	)
	if err != nil {
		return mapBusy(err)
	}
	return requireRowsAffected(res)
}

func (r *invitesRepo) ListInvitesByUnit(ctx context.Context, unitID string, limit, offset int) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+inviteColumns+`
		FROM invites
		WHERE unit_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		unitID, limit, offset,
	)
	if err != nil {
		return nil, mapBusy(err)
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, mapBusy(rows.Err())
}

// GetUnitInviteStats computes all counters in one pass over the unit's
// invites so concurrent redemptions cannot produce a torn rollup.
func (r *invitesRepo) GetUnitInviteStats(ctx context.Context, unitID string, now time.Time) (domain.InviteStats, error) {
	var stats domain.InviteStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
		    COUNT(*),
		    COALESCE(SUM(CASE
		        WHEN is_active = 1 AND expires_at >= ?2
		             AND (max_uses IS NULL OR used_count < max_uses)
		        THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE WHEN expires_at < ?2 THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(CASE
		        WHEN max_uses IS NOT NULL AND used_count >= max_uses
		        THEN 1 ELSE 0 END), 0),
		    COALESCE(SUM(used_count), 0)
		FROM invites
		WHERE unit_id = ?1 AND deleted_at IS NULL`,
		unitID, toUnix(now),
	).Scan(&stats.Total, &stats.Active, &stats.Expired, &stats.Exhausted, &stats.TotalUses)
	if err != nil {
		return domain.InviteStats{}, mapBusy(err)
	}
	return stats, nil
}

func (r *invitesRepo) PurgeExpiredInvites(ctx context.Context, olderThan time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM invites
		WHERE (deleted_at IS NOT NULL AND deleted_at < ?1)
		   OR expires_at < ?1`,
		toUnix(olderThan),
	)
	return mapBusy(err)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanInvite(row scannable) (domain.Invite, error) {
	var (
		inv       domain.Invite
		email     sql.NullString
		expiresAt int64
		maxUses   sql.NullInt64
		createdAt int64
		updatedAt int64
		deletedAt sql.NullInt64
	)
	err := row.Scan(
		&inv.ID,
		&inv.UnitID,
		&inv.Token,
		&email,
		&expiresAt,
		&inv.IsActive,
		&maxUses,
		&inv.UsedCount,
		&inv.CreatedBy,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}

	inv.Email = fromNullString(email)
	inv.ExpiresAt = fromUnix(expiresAt)
	inv.MaxUses = fromNullInt64(maxUses)
	inv.CreatedAt = fromUnix(createdAt)
	inv.UpdatedAt = fromUnix(updatedAt)
	inv.DeletedAt = fromUnixPtr(deletedAt)
	return inv, nil
}
