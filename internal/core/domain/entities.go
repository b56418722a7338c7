package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the enumerated values.
func (r Role) IsValid() bool {
	return r == RoleDonor || r == RoleVolunteer || r == RoleAdmin
}

// UserStatus represents account status
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

// StatusFilterAll is the admin-search sentinel meaning "no status constraint".
const StatusFilterAll = "all"

// Donation request statuses. Only pending/inprogress/done/canceled are ever
// written by an exposed transition; "approved" shows up in queue filters and
// is kept for client compatibility. The status column otherwise accepts
// free text (the update-status operation does not validate its input).
const (
	RequestPending    = "pending"
	RequestInProgress = "inprogress"
	RequestDone       = "done"
	RequestCanceled   = "canceled"
	RequestApproved   = "approved"
)

// Blog statuses
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

// User represents a user in the domain layer
type User struct {
	ID         uint
	Name       string
	Email      string
	Password   string // hashed
	BloodGroup string
	District   string
	Upazila    string
	Avatar     string
	Role       Role
	Status     UserStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Capability is the authorization decision for one identity, resolved
// fresh from the user directory at check time. Token claims are never
// trusted for role or status.
type Capability struct {
	Email  string
	Role   Role
	Status UserStatus
}

// IsActive reports whether the account may perform guarded actions.
func (c Capability) IsActive() bool {
	return c.Status == StatusActive
}

// HasRole reports whether the capability's role is in the allowed set.
func (c Capability) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if c.Role == r {
			return true
		}
	}
	return false
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
