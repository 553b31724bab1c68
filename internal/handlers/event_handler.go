package handlers

import (
	"context"
	"fmt"
	"log/slog"

	matchdayv1 "github.com/asakaida/matchday/api/matchday/v1"
	"github.com/asakaida/matchday/internal/infrastructure/metrics"
	"github.com/asakaida/matchday/internal/services"
	"google.golang.org/protobuf/types/known/emptypb"
)

// EventHandler handles EventService gRPC requests
type EventHandler struct {
	deleteEvent services.DeleteEventServiceInterface
	collector   *metrics.Collector
	logger      *slog.Logger
}

var _ matchdayv1.EventServiceServer = (*EventHandler)(nil)

// NewEventHandler creates a new EventHandler. collector and logger may be nil.
func NewEventHandler(deleteEvent services.DeleteEventServiceInterface, collector *metrics.Collector, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		deleteEvent: deleteEvent,
		collector:   collector,
		logger:      logger,
	}
}

// DeleteEvent handles the DeleteEvent RPC
func (h *EventHandler) DeleteEvent(ctx context.Context, req *matchdayv1.DeleteEventRequest) (*emptypb.Empty, error) {
	err := validateDeleteRequest(req.EventID, req.UserID)
	if err == nil {
		err = h.deleteEvent.Perform(ctx, req.EventID, req.UserID)
	}
	recordDeletion(h.collector, err)

	if err != nil {
		code, _, _ := classify(err)
		logInternalFailure(ctx, h.logger, code, req.EventID, req.UserID, err)
		return nil, toStatusError(code, err)
	}
	return &emptypb.Empty{}, nil
}

func validateDeleteRequest(eventID, userID string) error {
	if eventID == "" {
		return fmt.Errorf("%w: event_id is required", errInvalidRequest)
	}
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", errInvalidRequest)
	}
	return nil
}

func recordDeletion(collector *metrics.Collector, err error) {
	if collector == nil {
		return
	}
	_, _, outcome := classify(err)
	collector.RecordDeletion(outcome)
}
