package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestClassify(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	base := Invite{
		IsActive:  true,
		ExpiresAt: now.Add(24 * time.Hour),
		MaxUses:   ptr(5),
		UsedCount: 0,
	}

	t.Run("valid invite", func(t *testing.T) {
		v := base.Classify(now)
		require.True(t, v.Valid)
		require.Empty(t, v.Reason)
	})

	t.Run("inactive wins over expired", func(t *testing.T) {
		inv := base
		inv.IsActive = false
		inv.ExpiresAt = now.Add(-time.Hour)

		v := inv.Classify(now)
		require.False(t, v.Valid)
		require.Equal(t, ReasonInactive, v.Reason)
	})

	t.Run("expired wins over exhausted", func(t *testing.T) {
		inv := base
		inv.ExpiresAt = now.Add(-time.Second)
		inv.UsedCount = 5

		v := inv.Classify(now)
		require.False(t, v.Valid)
		require.Equal(t, ReasonExpired, v.Reason)
	})

	t.Run("exactly at expiry is still valid", func(t *testing.T) {
		inv := base
		inv.ExpiresAt = now

		v := inv.Classify(now)
		require.True(t, v.Valid)
	})

	t.Run("exhausted", func(t *testing.T) {
		inv := base
		inv.UsedCount = 5

		v := inv.Classify(now)
		require.False(t, v.Valid)
		require.Equal(t, ReasonExhausted, v.Reason)
	})

	t.Run("unlimited never exhausts", func(t *testing.T) {
		inv := base
		inv.MaxUses = nil
		inv.UsedCount = 1_000_000

		v := inv.Classify(now)
		require.True(t, v.Valid)
	})

	t.Run("classification does not mutate the snapshot", func(t *testing.T) {
		inv := base
		before := inv
		for range 100 {
			_ = inv.Classify(now)
		}
		require.Equal(t, before, inv)
	})
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	inv := Invite{MaxUses: ptr(10), UsedCount: 3}
	require.Equal(t, int64(7), *inv.Remaining())

	inv.UsedCount = 12 // over-count should clamp, not go negative
	require.Equal(t, int64(0), *inv.Remaining())

	inv.MaxUses = nil
	require.Nil(t, inv.Remaining())
}
