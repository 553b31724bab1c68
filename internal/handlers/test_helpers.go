package handlers

import (
	"context"
	"io"
	"log/slog"
)

// Mock DeleteEventService
type mockDeleteEventService struct {
	performFunc func(ctx context.Context, eventID string, userID string) error
	calls       int
}

func (m *mockDeleteEventService) Perform(ctx context.Context, eventID string, userID string) error {
	m.calls++
	if m.performFunc != nil {
		return m.performFunc(ctx, eventID, userID)
	}
	return nil
}

// Mock HealthChecker
type mockHealthChecker struct {
	healthCheckFunc func(ctx context.Context) error
}

func (m *mockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.healthCheckFunc != nil {
		return m.healthCheckFunc(ctx)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
