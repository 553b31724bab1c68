package repositories

import (
	"context"

	"github.com/asakaida/matchday/internal/entities"
)

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// Create stores a new match
	Create(ctx context.Context, match *entities.Match) error

	// ListByEvent retrieves all matches of an event ordered by creation time
	ListByEvent(ctx context.Context, eventID string) ([]*entities.Match, error)

	// DeleteByEvent removes all matches of an event.
	// An event without matches is not an error.
	DeleteByEvent(ctx context.Context, eventID string) error
}
