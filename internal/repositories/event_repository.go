package repositories

import (
	"context"

	"github.com/asakaida/matchday/internal/entities"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create stores a new event
	Create(ctx context.Context, event *entities.Event) error

	// Delete removes an event. Deleting a missing event is not an error.
	Delete(ctx context.Context, eventID string) error
}
