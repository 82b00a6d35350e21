package domain

import "time"

// Unit is the housing unit residents onboard into. Full unit management
// lives in the property CRUD service; this service only needs identity
// and soft-delete state to validate invites.
type Unit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	DeletedAt *time.Time
}
