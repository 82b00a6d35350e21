package domain

import "time"

// Invite is a capacity- and time-bounded credential permitting onboarding
// into a unit. The token is the sole redemption credential.
type Invite struct {
	ID        string
	UnitID    string
	Token     string // 64 lowercase hex chars, unique among non-deleted invites
	Email     string // optional contact hint, informational only
	ExpiresAt time.Time
	IsActive  bool   // administratively active; one-way true -> false
	MaxUses   *int64 // nil = unlimited
	UsedCount int64
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Reason classifies why an invite is not redeemable.
type Reason string

const (
	ReasonNotFound  Reason = "not_found"
	ReasonInactive  Reason = "inactive"
	ReasonExpired   Reason = "expired"
	ReasonExhausted Reason = "exhausted"
)

// Validity is the result of classifying an invite snapshot.
type Validity struct {
	Valid  bool
	Reason Reason // set only when Valid is false
}

// Classify reports whether the invite snapshot is redeemable at the given
// time. Checks run in fixed order and the first failing check wins, so
// callers get a stable reason code.
//
// This is a pure function over a snapshot: it is for previews and error
// reporting only and must never gate redemption, because a read followed
// by a separate write is racy. Redemption is enforced by the store's
// conditional update (see service.RedeemInvite).
func (i Invite) Classify(now time.Time) Validity {
	if !i.IsActive {
		return Validity{Reason: ReasonInactive}
	}
	if now.After(i.ExpiresAt) {
		return Validity{Reason: ReasonExpired}
	}
	if i.MaxUses != nil && i.UsedCount >= *i.MaxUses {
		return Validity{Reason: ReasonExhausted}
	}
	return Validity{Valid: true}
}

// Remaining returns the number of redemptions left, or nil when the
// invite is unlimited.
func (i Invite) Remaining() *int64 {
	if i.MaxUses == nil {
		return nil
	}
	left := *i.MaxUses - i.UsedCount
	if left < 0 {
		left = 0
	}
	return &left
}

// InviteStats is a point-in-time rollup of a unit's invites. Computed in
// a single aggregate query so concurrent redemptions cannot tear it.
type InviteStats struct {
	Total     int64
	Active    int64
	Expired   int64
	Exhausted int64
	TotalUses int64
}
