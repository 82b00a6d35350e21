package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/store"
	"github.com/dwellhq/dwell/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a file-backed store in a temp dir. Concurrency tests
// need a real file: with :memory: each pooled connection gets its own
// private database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(DSN(filepath.Join(t.TempDir(), "invites.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUnit(t *testing.T, s *Store) domain.Unit {
	t.Helper()

	now := time.Now()
	u := domain.Unit{ID: idx.New().String(), Name: "Unit 4B", CreatedAt: now}
	require.NoError(t, s.Units().CreateUnit(context.Background(), u))
	return u
}

func seedInvite(t *testing.T, s *Store, unitID, token string, maxUses *int64, expiresAt time.Time) domain.Invite {
	t.Helper()

	now := time.Now()
	inv := domain.Invite{
		ID:        idx.New().String(),
		UnitID:    unitID,
		Token:     token,
		ExpiresAt: expiresAt,
		IsActive:  true,
		MaxUses:   maxUses,
		CreatedBy: idx.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Invites().CreateInvite(context.Background(), inv))
	return inv
}

func int64Ptr(v int64) *int64 { return &v }

func TestTokenUniqueAmongLiveInvites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	expires := time.Now().Add(24 * time.Hour)

	first := seedInvite(t, s, unit.ID, "shared-token", nil, expires)

	exists, err := s.Invites().TokenExists(ctx, "shared-token")
	require.NoError(t, err)
	require.True(t, exists)

	// Same token while the first invite is live: rejected.
	dup := first
	dup.ID = idx.New().String()
	err = s.Invites().CreateInvite(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Soft-deleting the first invite frees the token.
	require.NoError(t, s.Invites().SoftDeleteInvite(ctx, first.ID, time.Now()))
	exists, err = s.Invites().TokenExists(ctx, "shared-token")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, s.Invites().CreateInvite(ctx, dup))

	// The deleted row no longer resolves by token; the new one does.
	got, err := s.Invites().GetInviteByToken(ctx, "shared-token")
	require.NoError(t, err)
	require.Equal(t, dup.ID, got.ID)
}

func TestClaimInviteSlot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	now := time.Now()
	expires := now.Add(24 * time.Hour)

	t.Run("increments and reports remaining state", func(t *testing.T) {
		inv := seedInvite(t, s, unit.ID, "claim-basic", int64Ptr(3), expires)

		got, err := s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.UsedCount)
		require.True(t, got.IsActive)
	})

	t.Run("final claim flips is_active in the same statement", func(t *testing.T) {
		inv := seedInvite(t, s, unit.ID, "claim-final", int64Ptr(1), expires)

		got, err := s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.UsedCount)
		require.False(t, got.IsActive)

		_, err = s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("matches zero rows when expired", func(t *testing.T) {
		inv := seedInvite(t, s, unit.ID, "claim-expired", nil, now.Add(-time.Hour))

		_, err := s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("succeeds exactly at the expiry instant", func(t *testing.T) {
		inv := seedInvite(t, s, unit.ID, "claim-at-expiry", nil, now)

		got, err := s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.UsedCount)
	})

	t.Run("matches zero rows when revoked", func(t *testing.T) {
		inv := seedInvite(t, s, unit.ID, "claim-revoked", nil, expires)
		require.NoError(t, s.Invites().RevokeInvite(ctx, inv.ID, now))

		_, err := s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unlimited invite never deactivates", func(t *testing.T) {
		inv := seedInvite(t, s, unit.ID, "claim-unlimited", nil, expires)

		for i := 1; i <= 5; i++ {
			got, err := s.Invites().ClaimInviteSlot(ctx, inv.Token, now)
			require.NoError(t, err)
			require.Equal(t, int64(i), got.UsedCount)
			require.True(t, got.IsActive)
		}
	})
}

func TestActiveOccupancyUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	now := time.Now()
	userID := idx.New().String()

	res := domain.Resident{
		ID:        idx.New().String(),
		UserID:    userID,
		UnitID:    unit.ID,
		IsActive:  true,
		MovedInAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Residents().CreateResident(ctx, res))

	// A second active row for the same (user, unit) violates the partial
	// unique index.
	dup := res
	dup.ID = idx.New().String()
	err := s.Residents().CreateResident(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// After move-out the user can take up residency again.
	require.NoError(t, s.Residents().DeactivateResident(ctx, res.ID, now))
	require.NoError(t, s.Residents().CreateResident(ctx, dup))

	count, err := s.Residents().CountActiveByUnit(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	now := time.Now()
	inv := seedInvite(t, s, unit.ID, "tx-rollback", int64Ptr(5), now.Add(time.Hour))

	boom := store.ErrAlreadyExists
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Invites().ClaimInviteSlot(ctx, inv.Token, now); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The claim inside the failed transaction must not leak.
	got, err := s.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.UsedCount)
}

func TestGetUnitInviteStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	now := time.Now()

	// Active with room left.
	seedInvite(t, s, unit.ID, "stats-active", int64Ptr(5), now.Add(time.Hour))
	// Expired.
	seedInvite(t, s, unit.ID, "stats-expired", nil, now.Add(-time.Hour))
	// Exhausted single-use.
	used := seedInvite(t, s, unit.ID, "stats-used", int64Ptr(1), now.Add(time.Hour))
	_, err := s.Invites().ClaimInviteSlot(ctx, used.Token, now)
	require.NoError(t, err)
	// Soft-deleted: invisible to the rollup.
	gone := seedInvite(t, s, unit.ID, "stats-deleted", nil, now.Add(time.Hour))
	require.NoError(t, s.Invites().SoftDeleteInvite(ctx, gone.ID, now))

	stats, err := s.Invites().GetUnitInviteStats(ctx, unit.ID, now)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Total)
	require.Equal(t, int64(1), stats.Active)
	require.Equal(t, int64(1), stats.Expired)
	require.Equal(t, int64(1), stats.Exhausted)
	require.Equal(t, int64(1), stats.TotalUses)
}

func TestListInvitesByUnitPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	expires := time.Now().Add(time.Hour)

	for i := 0; i < 5; i++ {
		seedInvite(t, s, unit.ID, "page-token-"+idx.New().String(), nil, expires)
	}

	first, err := s.Invites().ListInvitesByUnit(ctx, unit.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := s.Invites().ListInvitesByUnit(ctx, unit.ID, 3, 3)
	require.NoError(t, err)
	require.Len(t, second, 2)

	seen := map[string]bool{}
	for _, inv := range append(first, second...) {
		require.False(t, seen[inv.ID])
		seen[inv.ID] = true
	}
}

func TestPurgeExpiredInvites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	unit := seedUnit(t, s)
	now := time.Now()

	keep := seedInvite(t, s, unit.ID, "purge-keep", nil, now.Add(time.Hour))
	seedInvite(t, s, unit.ID, "purge-old", nil, now.Add(-48*time.Hour))
	oldDeleted := seedInvite(t, s, unit.ID, "purge-deleted-old", nil, now.Add(time.Hour))
	require.NoError(t, s.Invites().SoftDeleteInvite(ctx, oldDeleted.ID, now.Add(-48*time.Hour)))
	newDeleted := seedInvite(t, s, unit.ID, "purge-deleted-new", nil, now.Add(time.Hour))
	require.NoError(t, s.Invites().SoftDeleteInvite(ctx, newDeleted.ID, now))

	require.NoError(t, s.Invites().PurgeExpiredInvites(ctx, now.Add(-24*time.Hour)))

	_, err := s.Invites().GetInviteByID(ctx, keep.ID)
	require.NoError(t, err)
	_, err = s.Invites().GetInviteByToken(ctx, "purge-old")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Hard-deleted: soft-deleted before the cutoff.
	require.Zero(t, countInviteRows(t, s, oldDeleted.ID))
	// Retained: soft-deleted inside the retention window. The repo getters
	// hide it, so check the row directly.
	require.Equal(t, int64(1), countInviteRows(t, s, newDeleted.ID))
}

func countInviteRows(t *testing.T, s *Store, id string) int64 {
	t.Helper()

	var n int64
	err := s.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM invites WHERE id = ?`, id,
	).Scan(&n)
	require.NoError(t, err)
	return n
}
