package domain

import (
	"fmt"
	"sort"
)

// Permission is a capability flag granted to a user through its role.
type Permission string

const (
	PermManageMeetings Permission = "manage_meetings"
	PermManageUsers    Permission = "manage_users"
	PermViewReports    Permission = "view_reports"
	PermManageFiles    Permission = "manage_files"
)

// AllPermissions returns every known permission in a stable order.
func AllPermissions() []Permission {
	return []Permission{PermManageMeetings, PermManageUsers, PermViewReports, PermManageFiles}
}

// ParsePermission converts a wire string into a Permission.
func ParsePermission(s string) (Permission, error) {
	for _, p := range AllPermissions() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown permission %q", ErrInvalidPermission, s)
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether p is in the set. A nil set holds nothing.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAll reports whether every permission in required is held.
// An empty requirement is always satisfied.
func (s PermissionSet) HasAll(required ...Permission) bool {
	for _, p := range required {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// Slice returns the permissions sorted alphabetically.
func (s PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Role groups users by their default capabilities.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// DefaultPermissions returns the permissions a role grants out of the box.
func (r Role) DefaultPermissions() []Permission {
	switch r {
	case RoleAdmin:
		return AllPermissions()
	case RoleManager:
		return []Permission{PermManageMeetings, PermViewReports, PermManageFiles}
	case RoleUser:
		return []Permission{PermManageMeetings}
	default:
		return nil
	}
}
