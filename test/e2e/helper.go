package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	matchdayv1 "github.com/asakaida/matchday/api/matchday/v1"
	"github.com/asakaida/matchday/internal/handlers"
	"github.com/asakaida/matchday/internal/infrastructure/config"
	"github.com/asakaida/matchday/internal/infrastructure/database"
	"github.com/asakaida/matchday/internal/infrastructure/metrics"
	"github.com/asakaida/matchday/internal/repositories"
	"github.com/asakaida/matchday/internal/repositories/postgres"
	"github.com/asakaida/matchday/internal/repositories/sqlite"
	"github.com/asakaida/matchday/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

// E2ETestServer runs the full stack: PostgreSQL for events and groups,
// a temporary SQLite file for matches, gRPC over bufconn and REST over httptest.
type E2ETestServer struct {
	Server       *grpc.Server
	EventClient  matchdayv1.EventServiceClient
	HealthClient healthpb.HealthClient
	HTTP         *httptest.Server
	Conn         *grpc.ClientConn
	Listener     *bufconn.Listener

	Groups  repositories.GroupRepository
	Events  repositories.EventRepository
	Matches repositories.MatchRepository

	pg      *database.Postgres
	matches *database.SQLite
}

// SetupE2ETest sets up an E2E test environment. The test is skipped when
// PostgreSQL is not configured or not reachable.
func SetupE2ETest(t *testing.T) *E2ETestServer {
	t.Helper()

	if err := config.InitConfig("test"); err != nil {
		t.Fatalf("failed to init config: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Skipf("skipping E2E test: %v", err)
	}

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		t.Skipf("skipping E2E test: %v", err)
	}
	if err := pg.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	cleanupDatabase(t, pg.DB)

	matchStore, err := database.NewSQLite(&config.MatchStoreConfig{
		Path: filepath.Join(t.TempDir(), "matches.db"),
	})
	if err != nil {
		t.Fatalf("failed to open matches store: %v", err)
	}
	if err := matchStore.RunMigrations(); err != nil {
		t.Fatalf("failed to run matches migrations: %v", err)
	}

	groupRepo := postgres.NewPostgresGroupRepository(pg.DB)
	eventRepo := postgres.NewPostgresEventRepository(pg.DB)
	matchRepo := sqlite.NewSQLiteMatchRepository(matchStore.WriteDB, matchStore.ReadDB)

	deleteEvent := services.NewDeleteEventService(groupRepo, eventRepo, matchRepo)
	collector := metrics.NewCollector()
	reg := prometheus.NewRegistry()
	exporter := metrics.NewPrometheusExporter(collector, reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// gRPC over bufconn
	listener := bufconn.Listen(bufSize)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		handlers.UnaryRequestIDInterceptor(logger),
		handlers.UnaryLoggingInterceptor(logger),
		metrics.UnaryServerInterceptor(collector, exporter),
	))
	matchdayv1.RegisterEventServiceServer(server, handlers.NewEventHandler(deleteEvent, collector, logger))
	healthServer := health.NewServer()
	healthServer.SetServingStatus(matchdayv1.EventServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	conn, err := grpc.NewClient(
		"passthrough://bufconn",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to create client connection: %v", err)
	}

	// REST over httptest
	httpHandler := handlers.NewHTTPHandler(deleteEvent, collector, reg, map[string]handlers.HealthChecker{
		"events":  pg,
		"matches": matchStore,
	}, logger)
	httpServer := httptest.NewServer(httpHandler.Router(metrics.HTTPMiddleware(collector, exporter)))

	return &E2ETestServer{
		Server:       server,
		EventClient:  matchdayv1.NewEventServiceClient(conn),
		HealthClient: healthpb.NewHealthClient(conn),
		HTTP:         httpServer,
		Conn:         conn,
		Listener:     listener,
		Groups:       groupRepo,
		Events:       eventRepo,
		Matches:      matchRepo,
		pg:           pg,
		matches:      matchStore,
	}
}

// Teardown cleans up the E2E test environment
func (e *E2ETestServer) Teardown(t *testing.T) {
	t.Helper()

	if e.HTTP != nil {
		e.HTTP.Close()
	}
	if e.Conn != nil {
		e.Conn.Close()
	}
	if e.Server != nil {
		e.Server.Stop()
	}
	if e.Listener != nil {
		e.Listener.Close()
	}
	if e.matches != nil {
		e.matches.Close()
	}
	if e.pg != nil {
		cleanupDatabase(t, e.pg.DB)
		e.pg.Close()
	}
}

// cleanupDatabase removes all data from test database
func cleanupDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Delete in correct order due to foreign key constraints
	tables := []string{"events", "group_users", "groups"}
	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s", table)
		if _, err := db.ExecContext(ctx, query); err != nil {
			t.Logf("warning: failed to clean up table %s: %v", table, err)
		}
	}
}

// WaitForServer waits for the gRPC health service to report SERVING
func (e *E2ETestServer) WaitForServer(t *testing.T, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		resp, err := e.HealthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: matchdayv1.EventServiceName})
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			return
		}

		select {
		case <-ctx.Done():
			t.Fatal("timeout waiting for server to be ready")
		case <-ticker.C:
		}
	}
}
