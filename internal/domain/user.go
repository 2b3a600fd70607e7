package domain

import "time"

// Role represents a user's role in the marketplace
type Role string

const (
	RoleConsumer        Role = "consumer"
	RoleServiceProvider Role = "service_provider"
	RoleAdmin           Role = "admin"
)

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleConsumer, RoleServiceProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents an account in the system
type User struct {
	ID           int64
	ExternalUID  *string // UID at the external identity provider, nil for local accounts
	Email        *string // nil for external accounts without an email claim
	PasswordHash *string
	FullName     string
	PhoneNumber  *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID     int64
	Role       Role
	ProviderID *int64 // set when the user has a service provider profile
}

// IsAdmin returns true if the caller is an administrator
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IsProvider returns true if the caller acts as the given service provider
func (i *Identity) IsProvider(providerID int64) bool {
	return i != nil && i.ProviderID != nil && *i.ProviderID == providerID
}

// HasRole returns true if the caller has any of the given roles
func (i *Identity) HasRole(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
