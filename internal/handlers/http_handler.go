package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/asakaida/matchday/internal/infrastructure/metrics"
	"github.com/asakaida/matchday/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserIDHeader identifies the acting user on REST requests
const UserIDHeader = "X-User-ID"

const healthCheckTimeout = 5 * time.Second

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HTTPHandler serves the REST API together with health, metrics and debug endpoints
type HTTPHandler struct {
	deleteEvent services.DeleteEventServiceInterface
	collector   *metrics.Collector
	gatherer    prometheus.Gatherer
	checks      map[string]HealthChecker
	logger      *slog.Logger
}

// NewHTTPHandler creates a new HTTPHandler. checks is keyed by the name reported on /healthz.
func NewHTTPHandler(
	deleteEvent services.DeleteEventServiceInterface,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
	checks map[string]HealthChecker,
	logger *slog.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		deleteEvent: deleteEvent,
		collector:   collector,
		gatherer:    gatherer,
		checks:      checks,
		logger:      logger,
	}
}

// Router builds the chi router. extra middlewares run after request id and
// logging and see recovered panics as 500 responses.
func (h *HTTPHandler) Router(extra ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(h.logger))
	r.Use(extra...)
	r.Use(middleware.Recoverer)

	r.Delete("/v1/events/{eventID}", h.DeleteEvent)
	r.Get("/healthz", h.Health)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	if h.collector != nil {
		r.Get("/debug/stats", h.Stats)
	}

	return r
}

// DeleteEvent handles DELETE /v1/events/{eventID}
func (h *HTTPHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	userID := r.Header.Get(UserIDHeader)

	err := validateDeleteRequest(eventID, userID)
	if err == nil {
		err = h.deleteEvent.Perform(r.Context(), eventID, userID)
	}
	recordDeletion(h.collector, err)

	if err != nil {
		code, httpStatus, _ := classify(err)
		logInternalFailure(r.Context(), h.logger, code, eventID, userID, err)
		writeJSON(w, httpStatus, errorResponse{Error: errorMessage(code, err)})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /healthz
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK
	for _, name := range names {
		if err := h.checks[name].HealthCheck(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	writeJSON(w, code, resp)
}

// Stats handles GET /debug/stats
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collector.GetAPIMetrics())
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
