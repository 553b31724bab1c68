package entities

import "fmt"

// GroupUser represents one member of an event's group
// Example: {ID: "alice", Permission: "admin"}
type GroupUser struct {
	ID         string     // User ID, stored verbatim
	Permission Permission // Permission level inside the group
}

// NewGroupUser creates a GroupUser after checking both fields
func NewGroupUser(id string, permission Permission) (GroupUser, error) {
	if id == "" {
		return GroupUser{}, fmt.Errorf("user ID is required")
	}
	if !permission.Valid() {
		return GroupUser{}, fmt.Errorf("invalid permission for user %s: %q", id, permission)
	}
	return GroupUser{ID: id, Permission: permission}, nil
}

// IsElevated reports whether the user holds any permission other than "user".
// Owners and admins are elevated.
func (u GroupUser) IsElevated() bool {
	return u.Permission != PermissionUser
}

// String returns a string representation of the group user
// Format: id(permission)
func (u GroupUser) String() string {
	return fmt.Sprintf("%s(%s)", u.ID, u.Permission)
}
