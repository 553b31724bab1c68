package main

import (
	"io"
	"log/slog"
	"testing"

	matchdayv1 "github.com/asakaida/matchday/api/matchday/v1"
	"github.com/asakaida/matchday/internal/infrastructure/metrics"
	"github.com/asakaida/matchday/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestNewGRPCServer_RegisteredServices(t *testing.T) {
	deleteEvent := services.NewDeleteEventService(nil, nil, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server, healthServer := newGRPCServer(deleteEvent, metrics.NewCollector(), nil, logger)
	defer server.Stop()
	defer healthServer.Shutdown()

	info := server.GetServiceInfo()
	assert.Contains(t, info, matchdayv1.EventServiceName)
	assert.Contains(t, info, "grpc.health.v1.Health")

	// reflection would advertise EventService without a descriptor to back it
	assert.NotContains(t, info, "grpc.reflection.v1.ServerReflection")
	assert.NotContains(t, info, "grpc.reflection.v1alpha.ServerReflection")
	assert.Len(t, info, 2)
}
