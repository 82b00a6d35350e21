package store

import (
	"context"
	"errors"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrBusy reports a transient store-level failure (lock contention,
	// connection timeout). It is the only store error safe to retry.
	ErrBusy = errors.New("store: busy")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and to actively stop callers from accidentally
// nesting transactions.
type Store interface {
	Units() Units
	Invites() Invites
	Residents() Residents

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-statement operations: redemption
	// relies on it to keep the capacity claim and the resident insert in
	// one unit of work.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Units interface {
	// CreateUnit inserts a new unit (id is provided by app via ULID).
	CreateUnit(ctx context.Context, u domain.Unit) error

	// GetUnitByID returns a unit by id, excluding soft-deleted rows.
	GetUnitByID(ctx context.Context, id string) (domain.Unit, error)
}

type Invites interface {
	// CreateInvite writes a new invite row. Token collisions surface as
	// ErrAlreadyExists via the partial unique index on token.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByToken returns a non-deleted invite by its raw token.
	GetInviteByToken(ctx context.Context, token string) (domain.Invite, error)

	// GetInviteByID returns a non-deleted invite by id.
	GetInviteByID(ctx context.Context, id string) (domain.Invite, error)

	// TokenExists reports whether a non-deleted invite already holds the
	// token. Used by token generation to guarantee global uniqueness.
	TokenExists(ctx context.Context, token string) (bool, error)

	// ClaimInviteSlot is the redemption synchronization primitive: a
	// single conditional UPDATE that increments used_count and, in the
	// same statement, flips is_active off when the post-increment count
	// reaches max_uses. The predicate (active, unexpired, capacity left)
	// is re-evaluated against the latest committed row state for every
	// writer, making this a compare-and-swap without locks.
	//
	// Returns the claimed invite row, or ErrNotFound when the update
	// matched zero rows (invalid or exhausted invite).
	ClaimInviteSlot(ctx context.Context, token string, now time.Time) (domain.Invite, error)

	// RevokeInvite flips is_active off without touching capacity.
	// Returns ErrNotFound if the invite is missing or already inactive.
	RevokeInvite(ctx context.Context, id string, now time.Time) error

	// SoftDeleteInvite sets deleted_at, freeing the token for reuse.
	SoftDeleteInvite(ctx context.Context, id string, now time.Time) error

	// ListInvitesByUnit returns a page of non-deleted invites for a unit,
	// newest first.
	ListInvitesByUnit(ctx context.Context, unitID string, limit, offset int) ([]domain.Invite, error)

	// GetUnitInviteStats computes the unit rollup in one aggregate query
	// so the counts come from a single consistent snapshot.
	GetUnitInviteStats(ctx context.Context, unitID string, now time.Time) (domain.InviteStats, error)

	// PurgeExpiredInvites hard-deletes invites soft-deleted or expired
	// before the retention cutoff. Housekeeping only; correctness never
	// depends on it.
	PurgeExpiredInvites(ctx context.Context, olderThan time.Time) error
}

type Residents interface {
	// CreateResident inserts a resident row. A violation of the partial
	// unique index on (user_id, unit_id) WHERE is_active surfaces as
	// ErrAlreadyExists.
	CreateResident(ctx context.Context, r domain.Resident) error

	// GetActiveResident returns the active resident row for a (user, unit)
	// pair, or ErrNotFound.
	GetActiveResident(ctx context.Context, userID, unitID string) (domain.Resident, error)

	// DeactivateResident records a move-out: is_active off, moved_out_at set.
	DeactivateResident(ctx context.Context, id string, now time.Time) error

	// CountActiveByUnit returns the number of active residents in a unit.
	CountActiveByUnit(ctx context.Context, unitID string) (int64, error)
}
