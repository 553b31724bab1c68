package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	matchdayv1 "github.com/asakaida/matchday/api/matchday/v1"
	"github.com/asakaida/matchday/internal/entities"
	"github.com/asakaida/matchday/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// seedEvent creates a group with the given members, one event in it and n matches
func seedEvent(t *testing.T, e *E2ETestServer, groupID, eventID string, members []entities.GroupUser, n int) {
	t.Helper()
	ctx := context.Background()

	for _, member := range members {
		require.NoError(t, e.Groups.AddUser(ctx, groupID, member))
	}
	require.NoError(t, e.Events.Create(ctx, &entities.Event{
		ID:       eventID,
		GroupID:  groupID,
		Name:     "Sunday league " + eventID,
		StartsAt: time.Date(2026, 5, 3, 15, 0, 0, 0, time.UTC),
	}))

	for i := 0; i < n; i++ {
		require.NoError(t, e.Matches.Create(ctx, &entities.Match{
			ID:        eventID + "-m" + string(rune('0'+i)),
			EventID:   eventID,
			HomeTeam:  "Reds",
			AwayTeam:  "Blues",
			HomeScore: i,
			AwayScore: 1,
		}))
	}
}

func TestScenario_DeleteEvent(t *testing.T) {
	e := SetupE2ETest(t)
	defer e.Teardown(t)
	e.WaitForServer(t, 5*time.Second)

	ctx := context.Background()
	members := []entities.GroupUser{
		{ID: "alice", Permission: entities.PermissionOwner},
		{ID: "bob", Permission: entities.PermissionAdmin},
		{ID: "carol", Permission: entities.PermissionUser},
	}
	seedEvent(t, e, "club", "derby", members, 3)
	seedEvent(t, e, "club", "friendly", members, 2)

	t.Run("unknown event", func(t *testing.T) {
		_, err := e.EventClient.DeleteEvent(ctx, &matchdayv1.DeleteEventRequest{EventID: "nope", UserID: "alice"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("non member is rejected", func(t *testing.T) {
		_, err := e.EventClient.DeleteEvent(ctx, &matchdayv1.DeleteEventRequest{EventID: "derby", UserID: "mallory"})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("plain member is rejected and nothing is deleted", func(t *testing.T) {
		_, err := e.EventClient.DeleteEvent(ctx, &matchdayv1.DeleteEventRequest{EventID: "derby", UserID: "carol"})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		group, err := e.Groups.Load(ctx, "derby")
		require.NoError(t, err)
		assert.NotNil(t, group)

		matches, err := e.Matches.ListByEvent(ctx, "derby")
		require.NoError(t, err)
		assert.Len(t, matches, 3)
	})

	t.Run("admin deletes the event and its matches over gRPC", func(t *testing.T) {
		_, err := e.EventClient.DeleteEvent(ctx, &matchdayv1.DeleteEventRequest{EventID: "derby", UserID: "bob"})
		require.NoError(t, err)

		group, err := e.Groups.Load(ctx, "derby")
		require.NoError(t, err)
		assert.Nil(t, group, "deleted event must no longer resolve to a group")

		matches, err := e.Matches.ListByEvent(ctx, "derby")
		require.NoError(t, err)
		assert.Empty(t, matches)

		others, err := e.Matches.ListByEvent(ctx, "friendly")
		require.NoError(t, err)
		assert.Len(t, others, 2, "matches of other events are untouched")
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		_, err := e.EventClient.DeleteEvent(ctx, &matchdayv1.DeleteEventRequest{EventID: "derby", UserID: "bob"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("owner deletes over REST", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, e.HTTP.URL+"/v1/events/friendly", nil)
		require.NoError(t, err)
		req.Header.Set(handlers.UserIDHeader, "alice")

		resp, err := e.HTTP.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		matches, err := e.Matches.ListByEvent(ctx, "friendly")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("health reports both stores", func(t *testing.T) {
		resp, err := e.HTTP.Client().Get(e.HTTP.URL + "/healthz")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
