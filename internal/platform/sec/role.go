// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full back-office access
	RoleAdmin UserRole = "admin"

	// Can curate catalogue content but not manage accounts or promotions
	RoleStaff UserRole = "staff"

	// Default role for registered shoppers
	RoleCustomer UserRole = "customer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsAdmin reports whether the role grants unrestricted back-office access.
//
// # Invariant
//
// This is the single place the "admin" role tag is interpreted; the session
// snapshot's admin flag and the route guards all derive from it.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Gaps in the scale leave room for intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleStaff:
		return 20
	case RoleCustomer:
		return 10
	default:
		return 0
	}
}
