package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asakaida/matchday/internal/entities"
)

// callLog records the order in which collaborators are invoked
type callLog struct {
	calls []string
}

func (l *callLog) add(call string) {
	l.calls = append(l.calls, call)
}

type groupLoaderSpy struct {
	log        *callLog
	eventID    string
	callsCount int
	output     *entities.Group
	err        error
}

func (s *groupLoaderSpy) Load(ctx context.Context, eventID string) (*entities.Group, error) {
	s.log.add("load")
	s.eventID = eventID
	s.callsCount++
	return s.output, s.err
}

type eventDeleterSpy struct {
	log        *callLog
	eventID    string
	callsCount int
	err        error
}

func (s *eventDeleterSpy) Delete(ctx context.Context, eventID string) error {
	s.log.add("delete_event")
	s.eventID = eventID
	s.callsCount++
	return s.err
}

type matchDeleterSpy struct {
	log        *callLog
	eventID    string
	callsCount int
	err        error
}

func (s *matchDeleterSpy) DeleteByEvent(ctx context.Context, eventID string) error {
	s.log.add("delete_matches")
	s.eventID = eventID
	s.callsCount++
	return s.err
}

type sutTypes struct {
	sut     *DeleteEventService
	groups  *groupLoaderSpy
	events  *eventDeleterSpy
	matches *matchDeleterSpy
	log     *callLog
}

const (
	eventID = "any_event_id"
	userID  = "any_user_id"
)

func makeSut() sutTypes {
	log := &callLog{}
	groups := &groupLoaderSpy{
		log:    log,
		output: entities.NewGroup(entities.GroupUser{ID: userID, Permission: entities.PermissionAdmin}),
	}
	events := &eventDeleterSpy{log: log}
	matches := &matchDeleterSpy{log: log}

	return sutTypes{
		sut:     NewDeleteEventService(groups, events, matches),
		groups:  groups,
		events:  events,
		matches: matches,
		log:     log,
	}
}

func TestDeleteEventService_LoadsGroup(t *testing.T) {
	s := makeSut()

	err := s.sut.Perform(context.Background(), eventID, userID)

	require.NoError(t, err)
	assert.Equal(t, eventID, s.groups.eventID)
	assert.Equal(t, 1, s.groups.callsCount)
}

func TestDeleteEventService_Denied(t *testing.T) {
	tests := []struct {
		name    string
		group   *entities.Group
		userID  string
		wantErr error
	}{
		{
			name:    "event not found",
			group:   nil,
			userID:  userID,
			wantErr: ErrEventNotFound,
		},
		{
			name:    "user is not a member",
			group:   entities.NewGroup(entities.GroupUser{ID: "U2", Permission: entities.PermissionAdmin}),
			userID:  "U1",
			wantErr: ErrUserNotAuthorized,
		},
		{
			name:    "group without members",
			group:   entities.NewGroup(),
			userID:  userID,
			wantErr: ErrUserNotAuthorized,
		},
		{
			name:    "member holds user permission",
			group:   entities.NewGroup(entities.GroupUser{ID: userID, Permission: entities.PermissionUser}),
			userID:  userID,
			wantErr: ErrInsufficientPermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeSut()
			s.groups.output = tt.group

			err := s.sut.Perform(context.Background(), eventID, tt.userID)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, s.events.callsCount, "event must not be deleted")
			assert.Zero(t, s.matches.callsCount, "matches must not be deleted")
		})
	}
}

func TestDeleteEventService_ErrorKindsAreDistinct(t *testing.T) {
	s := makeSut()
	s.groups.output = nil

	err := s.sut.Perform(context.Background(), eventID, userID)

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NotErrorIs(t, err, ErrUserNotAuthorized)
	assert.NotErrorIs(t, err, ErrInsufficientPermission)
}

func TestDeleteEventService_Allowed(t *testing.T) {
	for _, permission := range []entities.Permission{entities.PermissionAdmin, entities.PermissionOwner} {
		t.Run(permission.String(), func(t *testing.T) {
			s := makeSut()
			s.groups.output = entities.NewGroup(
				entities.GroupUser{ID: "other_user", Permission: entities.PermissionUser},
				entities.GroupUser{ID: userID, Permission: permission},
			)

			err := s.sut.Perform(context.Background(), eventID, userID)

			require.NoError(t, err)
			assert.Equal(t, 1, s.events.callsCount)
			assert.Equal(t, eventID, s.events.eventID)
			assert.Equal(t, 1, s.matches.callsCount)
			assert.Equal(t, eventID, s.matches.eventID)
		})
	}
}

func TestDeleteEventService_DeletesEventBeforeMatches(t *testing.T) {
	s := makeSut()

	err := s.sut.Perform(context.Background(), eventID, userID)

	require.NoError(t, err)
	assert.Equal(t, []string{"load", "delete_event", "delete_matches"}, s.log.calls)
}

func TestDeleteEventService_PropagatesLoadError(t *testing.T) {
	s := makeSut()
	storeErr := errors.New("connection refused")
	s.groups.err = storeErr

	err := s.sut.Perform(context.Background(), eventID, userID)

	assert.Same(t, storeErr, err)
	assert.Zero(t, s.events.callsCount)
	assert.Zero(t, s.matches.callsCount)
}

func TestDeleteEventService_PropagatesEventDeleteError(t *testing.T) {
	s := makeSut()
	storeErr := errors.New("transport error")
	s.events.err = storeErr

	err := s.sut.Perform(context.Background(), eventID, userID)

	assert.Same(t, storeErr, err)
	assert.Equal(t, 1, s.events.callsCount)
	assert.Zero(t, s.matches.callsCount, "matches must not be deleted after a failed event delete")
}

func TestDeleteEventService_PropagatesMatchDeleteError(t *testing.T) {
	s := makeSut()
	storeErr := errors.New("disk I/O error")
	s.matches.err = storeErr

	err := s.sut.Perform(context.Background(), eventID, userID)

	assert.Same(t, storeErr, err)
	// The event stays deleted; there is no compensation step.
	assert.Equal(t, 1, s.events.callsCount)
	assert.Equal(t, 1, s.matches.callsCount)
}
