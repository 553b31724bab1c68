package entities

// Group is the set of users associated with an event.
// It is a read projection built fresh on every load; member IDs are unique.
type Group struct {
	users []GroupUser
}

// NewGroup creates a Group from its members
func NewGroup(users ...GroupUser) *Group {
	copied := make([]GroupUser, len(users))
	copy(copied, users)
	return &Group{users: copied}
}

// FindUser returns the member with the given ID.
// The second result is false when no member matches.
func (g *Group) FindUser(id string) (GroupUser, bool) {
	for _, u := range g.users {
		if u.ID == id {
			return u, true
		}
	}
	return GroupUser{}, false
}

// Users returns a copy of the group members
func (g *Group) Users() []GroupUser {
	copied := make([]GroupUser, len(g.users))
	copy(copied, g.users)
	return copied
}

// Len returns the number of members
func (g *Group) Len() int {
	return len(g.users)
}
