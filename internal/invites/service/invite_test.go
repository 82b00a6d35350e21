package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/store/drivers/sqlite"
	"github.com/dwellhq/dwell/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a file-backed store so every pooled connection sees
// the same database; the concurrency tests depend on that.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "invites.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestServices(t *testing.T) (*InviteService, *UnitService, *sqlite.Store) {
	t.Helper()

	st := newTestStore(t)
	return &InviteService{Store: st}, &UnitService{Store: st}, st
}

func createUnit(t *testing.T, units *UnitService) domain.Unit {
	t.Helper()

	u, err := units.CreateUnit(context.Background(), "Apartment 12")
	require.NoError(t, err)
	return u
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateInvite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	t.Run("mints a 64-hex-char token", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, unit.ID, "new@example.com", 7*24*time.Hour, int64Ptr(5), idx.New().String())
		require.NoError(t, err)
		require.Len(t, inv.Token, 64)
		require.True(t, inv.IsActive)
		require.Equal(t, int64(0), inv.UsedCount)
		require.Equal(t, int64(5), *inv.MaxUses)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, idx.New().String(), "", 24*time.Hour, nil, idx.New().String())
		require.ErrorIs(t, err, ErrUnitNotFound)
	})

	t.Run("rejects non-positive max_uses", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(0), idx.New().String())
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, unit.ID, "", 0, nil, idx.New().String())
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
	})
}

func TestRedeemInvite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	t.Run("creates an active resident", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(3), idx.New().String())
		require.NoError(t, err)

		userID := idx.New().String()
		res, claimed, err := svc.RedeemInvite(ctx, inv.Token, userID)
		require.NoError(t, err)
		require.Equal(t, userID, res.UserID)
		require.Equal(t, unit.ID, res.UnitID)
		require.True(t, res.IsActive)
		require.False(t, res.IsOwner)
		require.Equal(t, int64(1), claimed.UsedCount)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, _, err := svc.RedeemInvite(ctx, "0000000000000000000000000000000000000000000000000000000000000000", idx.New().String())
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("revoked invite reports inactive", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, nil, idx.New().String())
		require.NoError(t, err)
		require.NoError(t, svc.RevokeInvite(ctx, inv.ID))

		_, _, err = svc.RedeemInvite(ctx, inv.Token, idx.New().String())
		require.ErrorIs(t, err, ErrInviteInactive)
	})

	t.Run("second redemption by same user fails and returns the use", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(5), idx.New().String())
		require.NoError(t, err)

		userID := idx.New().String()
		_, _, err = svc.RedeemInvite(ctx, inv.Token, userID)
		require.NoError(t, err)

		_, _, err = svc.RedeemInvite(ctx, inv.Token, userID)
		require.ErrorIs(t, err, ErrAlreadyResident)

		// The failed attempt's capacity claim must have rolled back.
		got, _, err := svc.PreviewInvite(ctx, inv.Token)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.UsedCount)
	})
}

func TestRedeemInviteExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &InviteService{Store: st, Now: func() time.Time { return clock }}
	units := &UnitService{Store: st, Now: func() time.Time { return clock }}
	unit := createUnit(t, units)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 48*time.Hour, nil, idx.New().String())
	require.NoError(t, err)

	// Just inside the window: redeemable.
	clock = clock.Add(47 * time.Hour)
	_, _, err = svc.RedeemInvite(ctx, inv.Token, idx.New().String())
	require.NoError(t, err)

	// Exactly at expires_at: still redeemable.
	clock = clock.Add(1 * time.Hour)
	_, _, err = svc.RedeemInvite(ctx, inv.Token, idx.New().String())
	require.NoError(t, err)

	// Past the window: rejected with the expiry reason.
	clock = clock.Add(1 * time.Second)
	_, _, err = svc.RedeemInvite(ctx, inv.Token, idx.New().String())
	require.ErrorIs(t, err, ErrInviteExpired)
}

// TestExactCapacityRace is the core concurrency guarantee: 50 concurrent
// redeemers against 10 slots means exactly 10 residents, 40 exhausted
// rejections, and a final used_count of exactly 10.
func TestExactCapacityRace(t *testing.T) {
	ctx := context.Background()

	svc, units, st := newTestServices(t)
	unit := createUnit(t, units)

	const (
		capacity = 10
		racers   = 50
	)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(capacity), idx.New().String())
	require.NoError(t, err)

	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.RedeemInvite(ctx, inv.Token, idx.New().String())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, exhausted int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInviteExhausted):
			exhausted++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}
	require.Equal(t, capacity, wins)
	require.Equal(t, racers-capacity, exhausted)

	final, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, int64(capacity), final.UsedCount)
	require.False(t, final.IsActive)

	count, err := st.Residents().CountActiveByUnit(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(capacity), count)
}

func TestSingleWinnerRace(t *testing.T) {
	ctx := context.Background()

	svc, units, st := newTestServices(t)
	unit := createUnit(t, units)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(1), idx.New().String())
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.RedeemInvite(ctx, inv.Token, idx.New().String())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, exhausted int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInviteExhausted):
			exhausted++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, exhausted)

	final, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), final.UsedCount)
	require.False(t, final.IsActive)
}

// TestDuplicateResidencyRace has one user race against themselves on an
// invite with plenty of capacity: only one attempt may win, and every
// losing claim must roll back even when the winner has already committed.
func TestDuplicateResidencyRace(t *testing.T) {
	ctx := context.Background()

	svc, units, st := newTestServices(t)
	unit := createUnit(t, units)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(10), idx.New().String())
	require.NoError(t, err)

	userID := idx.New().String()

	const racers = 10
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.RedeemInvite(ctx, inv.Token, userID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, rejected int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyResident):
			rejected++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, racers-1, rejected)

	// Every losing claim returned its use.
	final, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), final.UsedCount)
	require.True(t, final.IsActive)

	res, err := st.Residents().GetActiveResident(ctx, userID, unit.ID)
	require.NoError(t, err)
	require.Equal(t, userID, res.UserID)

	count, err := st.Residents().CountActiveByUnit(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

// TestUnlimitedCapacity verifies an invite without max_uses never
// deactivates from use, no matter how many distinct users redeem it.
func TestUnlimitedCapacity(t *testing.T) {
	ctx := context.Background()

	svc, units, st := newTestServices(t)
	unit := createUnit(t, units)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, nil, idx.New().String())
	require.NoError(t, err)

	const (
		workers   = 20
		perWorker = 50
		total     = workers * perWorker
	)

	var wg sync.WaitGroup
	errCh := make(chan error, total)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, _, err := svc.RedeemInvite(ctx, inv.Token, idx.New().String())
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	final, err := st.Invites().GetInviteByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, int64(total), final.UsedCount)
	require.True(t, final.IsActive)
	require.Nil(t, final.Remaining())
}

func TestPreviewInvitePurity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(2), idx.New().String())
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		got, validity, err := svc.PreviewInvite(ctx, inv.Token)
		require.NoError(t, err)
		require.True(t, validity.Valid)
		require.Equal(t, int64(0), got.UsedCount)
		require.True(t, got.IsActive)
	}

	t.Run("unknown token previews as not_found without error", func(t *testing.T) {
		_, validity, err := svc.PreviewInvite(ctx, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
		require.NoError(t, err)
		require.False(t, validity.Valid)
		require.Equal(t, domain.ReasonNotFound, validity.Reason)
	})

	t.Run("exhausted invite previews with reason", func(t *testing.T) {
		one, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(1), idx.New().String())
		require.NoError(t, err)
		_, _, err = svc.RedeemInvite(ctx, one.Token, idx.New().String())
		require.NoError(t, err)

		_, validity, err := svc.PreviewInvite(ctx, one.Token)
		require.NoError(t, err)
		require.False(t, validity.Valid)
	})
}

func TestRevokeInvite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	t.Run("revocation is one-way and keeps consumed uses", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(5), idx.New().String())
		require.NoError(t, err)
		_, _, err = svc.RedeemInvite(ctx, inv.Token, idx.New().String())
		require.NoError(t, err)

		require.NoError(t, svc.RevokeInvite(ctx, inv.ID))

		got, validity, err := svc.PreviewInvite(ctx, inv.Token)
		require.NoError(t, err)
		require.False(t, validity.Valid)
		require.Equal(t, domain.ReasonInactive, validity.Reason)
		require.Equal(t, int64(1), got.UsedCount)
	})

	t.Run("revoking twice reports not found", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, nil, idx.New().String())
		require.NoError(t, err)
		require.NoError(t, svc.RevokeInvite(ctx, inv.ID))
		require.ErrorIs(t, svc.RevokeInvite(ctx, inv.ID), ErrInviteNotFound)
	})
}

func TestDeleteInviteFreesToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	inv, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, nil, idx.New().String())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteInvite(ctx, inv.ID))

	_, validity, err := svc.PreviewInvite(ctx, inv.Token)
	require.NoError(t, err)
	require.Equal(t, domain.ReasonNotFound, validity.Reason)
}

func TestUnitStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	active, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(5), idx.New().String())
	require.NoError(t, err)
	_, _, err = svc.RedeemInvite(ctx, active.Token, idx.New().String())
	require.NoError(t, err)

	single, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, int64Ptr(1), idx.New().String())
	require.NoError(t, err)
	_, _, err = svc.RedeemInvite(ctx, single.Token, idx.New().String())
	require.NoError(t, err)

	stats, residents, err := svc.UnitStats(ctx, unit.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Total)
	require.Equal(t, int64(1), stats.Active)
	require.Equal(t, int64(1), stats.Exhausted)
	require.Equal(t, int64(2), stats.TotalUses)
	require.Equal(t, int64(2), residents)

	t.Run("unknown unit", func(t *testing.T) {
		_, _, err := svc.UnitStats(ctx, idx.New().String())
		require.ErrorIs(t, err, ErrUnitNotFound)
	})
}

func TestListInvites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, units, _ := newTestServices(t)
	unit := createUnit(t, units)

	for i := 0; i < 5; i++ {
		_, err := svc.CreateInvite(ctx, unit.ID, "", 24*time.Hour, nil, idx.New().String())
		require.NoError(t, err)
	}

	page, err := svc.ListInvites(ctx, unit.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)

	rest, err := svc.ListInvites(ctx, unit.ID, 3, 3)
	require.NoError(t, err)
	require.Len(t, rest, 2)

	t.Run("unknown unit", func(t *testing.T) {
		_, err := svc.ListInvites(ctx, idx.New().String(), 10, 0)
		require.ErrorIs(t, err, ErrUnitNotFound)
	})
}
