package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	matchdayv1 "github.com/asakaida/matchday/api/matchday/v1"
	"github.com/asakaida/matchday/internal/handlers"
	"github.com/asakaida/matchday/internal/infrastructure/config"
	"github.com/asakaida/matchday/internal/infrastructure/database"
	"github.com/asakaida/matchday/internal/infrastructure/logging"
	"github.com/asakaida/matchday/internal/infrastructure/metrics"
	"github.com/asakaida/matchday/internal/repositories/postgres"
	"github.com/asakaida/matchday/internal/repositories/sqlite"
	"github.com/asakaida/matchday/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	defaultEnv      = "dev"
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Get environment from ENV variable or use default
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	// Initialize configuration
	if err := config.InitConfig(env); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.Log, os.Stdout)

	// Events and groups live in PostgreSQL
	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	if err := pg.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("connected to events store",
		"user", cfg.Database.User,
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Database)

	// Matches live in SQLite
	matchStore, err := database.NewSQLite(&cfg.MatchStore)
	if err != nil {
		log.Fatalf("Failed to open matches store: %v", err)
	}
	defer matchStore.Close()

	if err := matchStore.RunMigrations(); err != nil {
		log.Fatalf("Failed to run matches migrations: %v", err)
	}

	logger.Info("opened matches store", "path", cfg.MatchStore.Path)

	// Initialize repositories
	groupRepo := postgres.NewPostgresGroupRepository(pg.DB)
	eventRepo := postgres.NewPostgresEventRepository(pg.DB)
	matchRepo := sqlite.NewSQLiteMatchRepository(matchStore.WriteDB, matchStore.ReadDB)

	// Initialize services
	deleteEvent := services.NewDeleteEventService(groupRepo, eventRepo, matchRepo)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector()
	exporter := metrics.NewPrometheusExporter(collector, registry)

	// Create gRPC server
	grpcServer, healthServer := newGRPCServer(deleteEvent, collector, exporter, logger)

	// Create HTTP server
	httpHandler := handlers.NewHTTPHandler(deleteEvent, collector, registry, map[string]handlers.HealthChecker{
		"events":  pg,
		"matches": matchStore,
	}, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddress(),
		Handler:           httpHandler.Router(metrics.HTTPMiddleware(collector, exporter)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start listening
	listener, err := net.Listen("tcp", cfg.Server.GRPCAddress())
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}

	serverErrors := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddress())
		if err := grpcServer.Serve(listener); err != nil {
			serverErrors <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server failed", "error", err)
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		logger.Info("gRPC server stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	}

	logger.Info("shutdown complete")
}

// newGRPCServer builds the gRPC server with the event and health services.
// Server reflection is not registered: EventService is described by a
// hand-written ServiceDesc with no file descriptor to serve.
func newGRPCServer(
	deleteEvent services.DeleteEventServiceInterface,
	collector *metrics.Collector,
	exporter *metrics.PrometheusExporter,
	logger *slog.Logger,
) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		handlers.UnaryRequestIDInterceptor(logger),
		handlers.UnaryLoggingInterceptor(logger),
		metrics.UnaryServerInterceptor(collector, exporter),
	))
	matchdayv1.RegisterEventServiceServer(server, handlers.NewEventHandler(deleteEvent, collector, logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(matchdayv1.EventServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}
