package services

import (
	"context"
	"fmt"

	"github.com/asakaida/matchday/internal/entities"
)

// GroupLoader resolves the group of an event
type GroupLoader interface {
	Load(ctx context.Context, eventID string) (*entities.Group, error)
}

// EventDeleter removes an event record
type EventDeleter interface {
	Delete(ctx context.Context, eventID string) error
}

// MatchDeleter removes every match of an event
type MatchDeleter interface {
	DeleteByEvent(ctx context.Context, eventID string) error
}

// DeleteEventServiceInterface defines the interface for the event deletion workflow
type DeleteEventServiceInterface interface {
	Perform(ctx context.Context, eventID string, userID string) error
}

// DeleteEventService deletes an event and its matches on behalf of a group member
type DeleteEventService struct {
	groups  GroupLoader
	events  EventDeleter
	matches MatchDeleter
}

// NewDeleteEventService creates a new DeleteEventService
func NewDeleteEventService(groups GroupLoader, events EventDeleter, matches MatchDeleter) *DeleteEventService {
	return &DeleteEventService{
		groups:  groups,
		events:  events,
		matches: matches,
	}
}

// Perform authorizes userID against the event's group, then deletes the event
// followed by its matches. Nothing is deleted unless the user is an owner or admin.
// A failed match deletion does not restore the event.
func (s *DeleteEventService) Perform(ctx context.Context, eventID string, userID string) error {
	group, err := s.groups.Load(ctx, eventID)
	if err != nil {
		return err
	}
	if group == nil {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}

	user, ok := group.FindUser(userID)
	if !ok {
		return fmt.Errorf("%w: user %s, event %s", ErrUserNotAuthorized, userID, eventID)
	}
	if !user.IsElevated() {
		return fmt.Errorf("%w: user %s has permission %s", ErrInsufficientPermission, userID, user.Permission)
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}
	if err := s.matches.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}

	return nil
}
