package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asakaida/matchday/internal/infrastructure/metrics"
	"github.com/asakaida/matchday/internal/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errInvalidRequest = errors.New("invalid request")

// internalErrorMessage is all a client sees of a store or driver failure
const internalErrorMessage = "failed to delete event"

// classify maps a delete error to its gRPC code, HTTP status and metrics outcome
func classify(err error) (codes.Code, int, string) {
	switch {
	case err == nil:
		return codes.OK, http.StatusNoContent, metrics.OutcomeDeleted
	case errors.Is(err, errInvalidRequest):
		return codes.InvalidArgument, http.StatusBadRequest, metrics.OutcomeInvalidRequest
	case errors.Is(err, services.ErrEventNotFound):
		return codes.NotFound, http.StatusNotFound, metrics.OutcomeEventNotFound
	case errors.Is(err, services.ErrUserNotAuthorized):
		return codes.PermissionDenied, http.StatusForbidden, metrics.OutcomeUserNotAuthorized
	case errors.Is(err, services.ErrInsufficientPermission):
		return codes.PermissionDenied, http.StatusForbidden, metrics.OutcomeInsufficientPermission
	default:
		return codes.Internal, http.StatusInternalServerError, metrics.OutcomeFailed
	}
}

// errorMessage is the client-facing text of a delete error
func errorMessage(code codes.Code, err error) string {
	if code == codes.Internal {
		return internalErrorMessage
	}
	return err.Error()
}

// logInternalFailure keeps the cause of an Internal error in the server log
func logInternalFailure(ctx context.Context, logger *slog.Logger, code codes.Code, eventID, userID string, err error) {
	if code != codes.Internal || logger == nil {
		return
	}
	logger.ErrorContext(ctx, "delete event failed",
		"event_id", eventID,
		"user_id", userID,
		"request_id", RequestIDFromContext(ctx),
		"error", err,
	)
}

func toStatusError(code codes.Code, err error) error {
	return status.Error(code, errorMessage(code, err))
}
