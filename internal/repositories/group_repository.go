package repositories

import (
	"context"

	"github.com/asakaida/matchday/internal/entities"
)

// GroupRepository defines the interface for group membership data access
type GroupRepository interface {
	// Load returns the group of the given event.
	// Returns nil and no error when the event or its group does not exist.
	Load(ctx context.Context, eventID string) (*entities.Group, error)

	// AddUser creates or updates a membership in a group
	AddUser(ctx context.Context, groupID string, user entities.GroupUser) error
}
