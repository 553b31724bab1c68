package entities

import "fmt"

// Permission is the level a user holds inside an event's group.
// Only three values exist: owner, admin and user.
type Permission string

const (
	PermissionOwner Permission = "owner"
	PermissionAdmin Permission = "admin"
	PermissionUser  Permission = "user"
)

// ParsePermission converts stored text into a Permission.
// Unknown values are rejected rather than mapped to a default.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown permission: %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known permissions
func (p Permission) Valid() bool {
	switch p {
	case PermissionOwner, PermissionAdmin, PermissionUser:
		return true
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}
