package domain

import "time"

// Resident is the materialized occupancy relationship between a user and
// a unit, created by a successful invite redemption.
//
// At most one active row may exist per (user, unit) pair; the residents
// table enforces this with a partial unique index, which is the second
// line of defense against duplicate-redemption races.
type Resident struct {
	ID         string
	UserID     string
	UnitID     string
	IsOwner    bool
	IsActive   bool
	MovedInAt  time.Time
	MovedOutAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
