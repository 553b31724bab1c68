package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc"
)

// UnaryServerInterceptor returns a gRPC interceptor that records metrics for each request.
func UnaryServerInterceptor(collector *Collector, exporter *PrometheusExporter) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		record(collector, exporter, info.FullMethod, time.Since(start).Seconds(), err != nil)
		return resp, err
	}
}

// HTTPMiddleware records metrics for each HTTP request, keyed by
// "<METHOD> <route pattern>". Responses with status 500 or above count as errors.
func HTTPMiddleware(collector *Collector, exporter *PrometheusExporter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			pattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			record(collector, exporter, r.Method+" "+pattern, time.Since(start).Seconds(), ww.Status() >= http.StatusInternalServerError)
		})
	}
}

func record(collector *Collector, exporter *PrometheusExporter, method string, seconds float64, failed bool) {
	collector.RecordRequest(method)
	collector.RecordDuration(method, seconds)
	if failed {
		collector.RecordError(method)
	}

	if exporter == nil {
		return
	}
	exporter.RecordRequest(method)
	exporter.RecordDuration(method, seconds)
	if failed {
		exporter.RecordError(method)
	}
}
