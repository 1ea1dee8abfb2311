package model

import "strings"

// Role is the closed set of permission levels a user can hold.  The three
// values form a flat model: buyers purchase and review, sellers own and
// manage listings, and admin is a superset allowed to run cross-user
// operations.  Authorization decisions go through the predicate methods
// below instead of comparing strings inline.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole normalizes raw input and reports whether it names a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleBuyer:
		return RoleBuyer, true
	case RoleSeller:
		return RoleSeller, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleAdmin
}

// CanSell reports whether the role may create and own product listings.
func (r Role) CanSell() bool { return r == RoleSeller }

// IsAdmin reports whether the role may perform cross-user administrative
// operations such as the sellers/buyers report and deleting accounts.
func (r Role) IsAdmin() bool { return r == RoleAdmin }
