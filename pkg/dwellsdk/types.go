package dwellsdk

// Int64 returns a pointer to v. Convenience for optional numeric request
// fields like MaxUses.
func Int64(v int64) *int64 { return &v }

// ============================================================================
// Units
// ============================================================================

// CreateUnitRequest registers a housing unit.
type CreateUnitRequest struct {
	// Name is a human-readable label for the unit
	Name string `json:"name"`
}

// UnitResponse describes a housing unit.
type UnitResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// CreatedAt is a unix timestamp in seconds
	CreatedAt int64 `json:"created_at"`
}

// ============================================================================
// Invites
// ============================================================================

// CreateInviteRequest mints an invite token for a unit.
type CreateInviteRequest struct {
	// Email is an optional contact hint, informational only
	Email string `json:"email,omitempty"`

	// TTLDays is how many days the invite stays redeemable. Required, > 0.
	TTLDays int `json:"ttl_days"`

	// MaxUses caps redemptions; nil means unlimited
	MaxUses *int64 `json:"max_uses,omitempty"`
}

// InviteResponse describes an invite. Token is present only in the
// creation response; it is never echoed by list or stats endpoints.
type InviteResponse struct {
	ID     string `json:"id"`
	UnitID string `json:"unit_id"`
	Token  string `json:"token,omitempty"`
	Email  string `json:"email,omitempty"`

	// ExpiresAt is a unix timestamp in seconds
	ExpiresAt int64 `json:"expires_at"`

	IsActive  bool   `json:"is_active"`
	MaxUses   *int64 `json:"max_uses,omitempty"`
	UsedCount int64  `json:"used_count"`

	// Remaining is the number of uses left; nil when unlimited
	Remaining *int64 `json:"remaining,omitempty"`

	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

// InviteListResponse is a page of a unit's invites, newest first.
type InviteListResponse struct {
	Invites []InviteResponse `json:"invites"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// PreviewInviteResponse reports whether a token could currently be
// redeemed. Advisory only: the answer may change before redemption.
type PreviewInviteResponse struct {
	Valid bool `json:"valid"`

	// Reason is set when Valid is false: one of "not_found", "inactive",
	// "expired", "exhausted"
	Reason string `json:"reason,omitempty"`

	// UnitID and ExpiresAt are populated for known tokens
	UnitID    string `json:"unit_id,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`

	// Remaining is the number of uses left; nil when unlimited or unknown
	Remaining *int64 `json:"remaining,omitempty"`
}

// RedeemInviteRequest consumes one use of an invite. The redeeming user
// is taken from the bearer token.
type RedeemInviteRequest struct {
	Token string `json:"token"`
}

// ResidentResponse describes an occupancy created by redemption.
type ResidentResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UnitID    string `json:"unit_id"`
	IsOwner   bool   `json:"is_owner"`
	IsActive  bool   `json:"is_active"`
	MovedInAt int64  `json:"moved_in_at"`
}

// RedeemInviteResponse is the result of a successful redemption.
type RedeemInviteResponse struct {
	Resident ResidentResponse `json:"resident"`

	// Invite reflects the invite's state after this redemption (token
	// omitted)
	Invite InviteResponse `json:"invite"`
}

// UnitStatsResponse is a point-in-time rollup of a unit's invites and
// occupancy.
type UnitStatsResponse struct {
	UnitID string `json:"unit_id"`

	TotalInvites     int64 `json:"total_invites"`
	ActiveInvites    int64 `json:"active_invites"`
	ExpiredInvites   int64 `json:"expired_invites"`
	ExhaustedInvites int64 `json:"exhausted_invites"`
	TotalUses        int64 `json:"total_uses"`

	ActiveResidents int64 `json:"active_residents"`
}

// ============================================================================
// Health
// ============================================================================

// HealthChecks reports per-dependency health in the readiness response.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
