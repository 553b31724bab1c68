package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// RequestIDHeader carries the request id over HTTP
	RequestIDHeader = "X-Request-ID"
	// RequestIDMetadataKey carries the request id over gRPC
	RequestIDMetadataKey = "x-request-id"

	maxRequestIDLength = 128
)

type ctxKeyRequestID struct{}

// RequestIDFromContext returns the request id stored by the request id middleware
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return rid
}

func withRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, rid)
}

// validRequestID accepts up to 128 characters of letters, digits and . _ : -
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(rid); i++ {
		c := rid[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == ':', c == '-':
		default:
			return false
		}
	}
	return true
}

// requestIDOrNew keeps a client supplied id when it is valid and generates a UUID otherwise
func requestIDOrNew(rid string) string {
	if validRequestID(rid) {
		return rid
	}
	return uuid.NewString()
}

// RequestID ensures each request has a request ID.
// It reads X-Request-ID if provided and valid; otherwise, it generates a UUID.
// The value is stored in context and also set in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := requestIDOrNew(r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), rid)))
	})
}

// UnaryRequestIDInterceptor is the gRPC counterpart of RequestID. The id is
// returned to the caller in the response header metadata.
func UnaryRequestIDInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var rid string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(RequestIDMetadataKey); len(values) > 0 {
				rid = values[0]
			}
		}
		rid = requestIDOrNew(rid)

		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, rid)); err != nil {
			logger.DebugContext(ctx, "failed to set request id header",
				"method", info.FullMethod,
				"request_id", rid,
				"error", err)
		}
		return handler(withRequestID(ctx, rid), req)
	}
}

// Logging writes one log line per HTTP request through chi's RequestLogger
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&slogFormatter{logger: logger})
}

// slogFormatter implements middleware.LogFormatter on top of slog
type slogFormatter struct {
	logger *slog.Logger
}

func (f *slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &slogEntry{
		logger: f.logger,
		ctx:    r.Context(),
		method: r.Method,
		path:   r.URL.Path,
	}
}

type slogEntry struct {
	logger *slog.Logger
	ctx    context.Context
	method string
	path   string
}

func (e *slogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	// nothing was written, net/http sends 200
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	e.logger.LogAttrs(e.ctx, level, "http request",
		slog.String("method", e.method),
		slog.String("path", e.path),
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.String("request_id", RequestIDFromContext(e.ctx)),
		slog.Duration("duration", elapsed),
	)
}

func (e *slogEntry) Panic(v interface{}, stack []byte) {
	e.logger.LogAttrs(e.ctx, slog.LevelError, "http handler panic",
		slog.String("method", e.method),
		slog.String("path", e.path),
		slog.Any("panic", v),
		slog.String("request_id", RequestIDFromContext(e.ctx)),
		slog.String("stack", string(stack)),
	)
}

// UnaryLoggingInterceptor writes one log line per gRPC call
func UnaryLoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []slog.Attr{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.String("request_id", RequestIDFromContext(ctx)),
			slog.Duration("duration", time.Since(start)),
		}
		level := slog.LevelInfo
		if err != nil && serverFault(code) {
			level = slog.LevelError
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		logger.LogAttrs(ctx, level, "grpc request", attrs...)

		return resp, err
	}
}

func serverFault(code codes.Code) bool {
	switch code {
	case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss:
		return true
	}
	return false
}
