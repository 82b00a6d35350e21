package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dwellhq/dwell/internal/invites/domain"
	"github.com/dwellhq/dwell/internal/invites/store"
	"github.com/dwellhq/dwell/pkg/cryptox"
	"github.com/dwellhq/dwell/pkg/idx"
	"github.com/dwellhq/dwell/pkg/slogx"
)

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrUnitNotFound         = errors.New("unit not found")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteInactive       = errors.New("invite has been revoked")
	ErrInviteExpired        = errors.New("invite has expired")
	ErrInviteExhausted      = errors.New("invite has no uses remaining")
	ErrAlreadyResident      = errors.New("user is already a resident of this unit")
	ErrTokenGeneration      = errors.New("could not generate a unique invite token")

	// ErrStoreBusy is returned when the store is under write contention and
	// the operation should be retried by the caller.
	ErrStoreBusy = errors.New("store busy, retry")
)

// tokenGenerationAttempts bounds the collision-retry loop when minting
// tokens. With 256-bit tokens a single collision is already
// astronomically unlikely; the bound exists so a broken entropy source
// fails loudly instead of spinning.
const tokenGenerationAttempts = 10

// defaultRedeemTimeout caps how long a single redemption may hold a write
// transaction, queue time under contention included.
const defaultRedeemTimeout = 30 * time.Second

type InviteService struct {
	Store store.Store

	// Now is the clock used for expiry decisions. Defaults to time.Now;
	// tests inject a fixed clock.
	Now func() time.Time

	// RedeemTimeout bounds a single redemption transaction.
	RedeemTimeout time.Duration
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateInvite mints a new invite token for a unit. maxUses nil means
// unlimited redemptions. Returns the stored invite including the raw
// token; the token is shown only to its creator.
func (s *InviteService) CreateInvite(
	ctx context.Context,
	unitID string,
	email string,
	ttl time.Duration,
	maxUses *int64,
	createdBy string,
) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the request shape.
	if unitID == "" || createdBy == "" || ttl <= 0 {
		log.Warn("invite creation missing required fields")
		return domain.Invite{}, ErrInvalidInviteRequest
	}
	if maxUses != nil && *maxUses < 1 {
		log.Warn("invite creation with non-positive max_uses",
			slog.Int64("max_uses", *maxUses),
		)
		return domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Validate the unit exists.
	if _, err := s.Store.Units().GetUnitByID(ctx, unitID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite creation for unknown unit", slog.String("unit_id", unitID))
			return domain.Invite{}, ErrUnitNotFound
		}
		log.Error("failed to fetch unit", slog.Any("error", err))
		return domain.Invite{}, mapStoreErr(err)
	}

	now := s.now()

	// 3. Generate a token, check it is unused, and insert. The existence
	// check catches collisions cheaply; the partial unique index on token
	// remains the authority, so a concurrent insert of the same token still
	// surfaces as ErrAlreadyExists and we mint a fresh one.
	for attempt := 0; attempt < tokenGenerationAttempts; attempt++ {
		token, err := cryptox.GenerateInviteToken()
		if err != nil {
			log.Error("failed to generate invite token", slog.Any("error", err))
			return domain.Invite{}, err
		}

		exists, err := s.Store.Invites().TokenExists(ctx, token)
		if err != nil {
			log.Error("failed to check token uniqueness", slog.Any("error", err))
			return domain.Invite{}, mapStoreErr(err)
		}
		if exists {
			log.Warn("invite token collision, regenerating",
				slog.Int("attempt", attempt+1),
			)
			continue
		}

		inv := domain.Invite{
			ID:        idx.New().String(),
			UnitID:    unitID,
			Token:     token,
			Email:     email,
			ExpiresAt: now.Add(ttl),
			IsActive:  true,
			MaxUses:   maxUses,
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = s.Store.Invites().CreateInvite(ctx, inv)
		if err == nil {
			log.Info("invite created",
				slog.String("invite_id", inv.ID),
				slog.String("unit_id", unitID),
				slog.Time("expires_at", inv.ExpiresAt),
			)
			return inv, nil
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("invite token collision, regenerating",
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, mapStoreErr(err)
	}

	log.Error("exhausted token generation attempts",
		slog.Int("attempts", tokenGenerationAttempts),
	)
	return domain.Invite{}, ErrTokenGeneration
}

// PreviewInvite reports whether a token could currently be redeemed,
// without consuming capacity or changing any state. The answer is
// advisory: between preview and redemption other redeemers may drain the
// invite, so redemption re-checks everything.
func (s *InviteService) PreviewInvite(ctx context.Context, token string) (domain.Invite, domain.Validity, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invites().GetInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, domain.Validity{Reason: domain.ReasonNotFound}, nil
		}
		log.Error("failed to fetch invite for preview", slog.Any("error", err))
		return domain.Invite{}, domain.Validity{}, mapStoreErr(err)
	}

	return inv, inv.Classify(s.now()), nil
}

// RedeemInvite consumes one use of an invite and adds the user as an
// active resident of the invite's unit. The capacity claim and the
// resident insert commit or roll back together: a failed insert (the user
// already lives there) returns the claimed use to the pool.
func (s *InviteService) RedeemInvite(ctx context.Context, token, userID string) (domain.Resident, domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if token == "" || userID == "" {
		log.Warn("invite redemption missing required fields")
		return domain.Resident{}, domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Bound the whole redemption, queue time included.
	timeout := s.RedeemTimeout
	if timeout <= 0 {
		timeout = defaultRedeemTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	now := s.now()

	// 3. Fast path: a user already living in the unit is rejected before
	// any capacity is claimed. Advisory only; the partial unique index on
	// (user_id, unit_id) stays the authority inside the transaction.
	if inv, err := s.Store.Invites().GetInviteByToken(ctx, token); err == nil {
		_, err := s.Store.Residents().GetActiveResident(ctx, userID, inv.UnitID)
		if err == nil {
			log.Warn("invite redemption rejected",
				slog.String("user_id", userID),
				slog.Any("reason", ErrAlreadyResident),
			)
			return domain.Resident{}, domain.Invite{}, ErrAlreadyResident
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to check residency", slog.Any("error", err))
			return domain.Resident{}, domain.Invite{}, mapStoreErr(err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.Resident{}, domain.Invite{}, mapStoreErr(err)
	}

	var (
		resident domain.Resident
		invite   domain.Invite
	)

	// 4. Claim a use and insert the resident in one transaction.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invites().ClaimInviteSlot(ctx, token, now)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// The conditional update matched nothing. Re-read inside
				// the same transaction to report why.
				return s.classifyFailedClaim(ctx, tx, token, now)
			}
			return err
		}
		invite = inv

		resident = domain.Resident{
			ID:        idx.New().String(),
			UserID:    userID,
			UnitID:    inv.UnitID,
			IsActive:  true,
			MovedInAt: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Residents().CreateResident(ctx, resident); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Rolling back returns the claimed use to the pool.
				return ErrAlreadyResident
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isServiceErr(err) {
			log.Warn("invite redemption rejected",
				slog.String("user_id", userID),
				slog.Any("reason", err),
			)
			return domain.Resident{}, domain.Invite{}, err
		}
		log.Error("invite redemption failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.Resident{}, domain.Invite{}, mapStoreErr(err)
	}

	log.Info("invite redeemed",
		slog.String("invite_id", invite.ID),
		slog.String("unit_id", invite.UnitID),
		slog.String("user_id", userID),
		slog.Int64("used_count", invite.UsedCount),
	)
	return resident, invite, nil
}

// classifyFailedClaim turns a zero-row claim into a precise rejection.
// Runs inside the redemption transaction so it sees the same snapshot the
// claim saw.
func (s *InviteService) classifyFailedClaim(ctx context.Context, tx store.Tx, token string, now time.Time) error {
	inv, err := tx.Invites().GetInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	// Capacity is checked first here, ahead of the snapshot classifier:
	// the claim statement flips is_active off when the last use is taken,
	// so a full invite would otherwise read as "revoked". Losers of a
	// capacity race must hear "exhausted".
	if inv.MaxUses != nil && inv.UsedCount >= *inv.MaxUses {
		return ErrInviteExhausted
	}

	switch inv.Classify(now).Reason {
	case domain.ReasonInactive:
		return ErrInviteInactive
	case domain.ReasonExpired:
		return ErrInviteExpired
	case domain.ReasonExhausted:
		return ErrInviteExhausted
	default:
		// The invite looks valid now, meaning another writer drained the
		// last use and it was reclassified between our claim and re-read,
		// or contention resolved oddly. Tell the caller to retry.
		return ErrStoreBusy
	}
}

// ListInvites returns a page of a unit's invites, newest first.
func (s *InviteService) ListInvites(ctx context.Context, unitID string, limit, offset int) ([]domain.Invite, error) {
	log := slogx.FromContext(ctx)

	if unitID == "" {
		return nil, ErrInvalidInviteRequest
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.Store.Units().GetUnitByID(ctx, unitID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnitNotFound
		}
		log.Error("failed to fetch unit", slog.Any("error", err))
		return nil, mapStoreErr(err)
	}

	invites, err := s.Store.Invites().ListInvitesByUnit(ctx, unitID, limit, offset)
	if err != nil {
		log.Error("failed to list invites", slog.Any("error", err))
		return nil, mapStoreErr(err)
	}
	return invites, nil
}

// UnitStats returns the invite rollup for a unit plus its active resident
// count.
func (s *InviteService) UnitStats(ctx context.Context, unitID string) (domain.InviteStats, int64, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Units().GetUnitByID(ctx, unitID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteStats{}, 0, ErrUnitNotFound
		}
		log.Error("failed to fetch unit", slog.Any("error", err))
		return domain.InviteStats{}, 0, mapStoreErr(err)
	}

	stats, err := s.Store.Invites().GetUnitInviteStats(ctx, unitID, s.now())
	if err != nil {
		log.Error("failed to compute invite stats", slog.Any("error", err))
		return domain.InviteStats{}, 0, mapStoreErr(err)
	}

	residents, err := s.Store.Residents().CountActiveByUnit(ctx, unitID)
	if err != nil {
		log.Error("failed to count residents", slog.Any("error", err))
		return domain.InviteStats{}, 0, mapStoreErr(err)
	}

	return stats, residents, nil
}

// RevokeInvite deactivates an invite. Uses already consumed stay
// consumed; only future redemptions are blocked.
func (s *InviteService) RevokeInvite(ctx context.Context, inviteID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Invites().RevokeInvite(ctx, inviteID, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		log.Error("failed to revoke invite",
			slog.String("invite_id", inviteID),
			slog.Any("error", err),
		)
		return mapStoreErr(err)
	}

	log.Info("invite revoked", slog.String("invite_id", inviteID))
	return nil
}

// DeleteInvite soft-deletes an invite, freeing its token for reuse.
func (s *InviteService) DeleteInvite(ctx context.Context, inviteID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Invites().SoftDeleteInvite(ctx, inviteID, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		log.Error("failed to delete invite",
			slog.String("invite_id", inviteID),
			slog.Any("error", err),
		)
		return mapStoreErr(err)
	}

	log.Info("invite deleted", slog.String("invite_id", inviteID))
	return nil
}

// mapStoreErr translates retryable store contention into ErrStoreBusy and
// passes everything else through.
func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrBusy) {
		return ErrStoreBusy
	}
	return err
}

func isServiceErr(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidInviteRequest),
		errors.Is(err, ErrUnitNotFound),
		errors.Is(err, ErrInviteNotFound),
		errors.Is(err, ErrInviteInactive),
		errors.Is(err, ErrInviteExpired),
		errors.Is(err, ErrInviteExhausted),
		errors.Is(err, ErrAlreadyResident),
		errors.Is(err, ErrStoreBusy):
		return true
	}
	return false
}
