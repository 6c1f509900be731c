package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/handlers"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// withMiddleware wraps the router with the middleware chain.
// Applied in reverse order (last applied = first executed).
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	handler = s.recoveryMiddleware(handler)
	handler = s.maxBodySizeMiddleware(handler, 1<<20) // 1MB cap on management routes
	handler = s.corsMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = s.correlationIDMiddleware(handler)
	return handler
}

// correlationIDMiddleware attaches a correlation ID to every request,
// honoring one supplied by the caller before minting a fresh one.
func (s *Server) correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestCorrelationID(r)
		w.Header().Set("X-Correlation-ID", id)

		ctx := context.WithValue(r.Context(), correlationIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestCorrelationID resolves the correlation ID for a request.
// X-Request-ID wins over X-Correlation-ID; absent both, a UUID is minted.
func requestCorrelationID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Correlation-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}

// correlationID reads the correlation ID middleware put on the context.
func correlationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// loggingMiddleware emits one structured event per request, leveled by the
// response status.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		event := s.logger.Debug()
		switch {
		case rec.status >= 500:
			event = s.logger.Error()
		case rec.status >= 400:
			event = s.logger.Warn()
		}
		event.
			Str("correlation_id", correlationID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("bytes", rec.written).
			Str("remote", r.RemoteAddr).
			Msg("HTTP request")
	})
}

// corsMiddleware answers preflight requests and marks all responses
// cross-origin accessible. MCP clients send their session header, so it is
// allowed through alongside the usual ones.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware converts a panic anywhere below it into a 500 response.
// Management routes answer with the JSON failure shape, everything else with
// plain text.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			s.logger.Error().
				Str("correlation_id", correlationID(r.Context())).
				Str("path", r.URL.Path).
				Msgf("panic recovered: %v", rec)

			if strings.HasPrefix(r.URL.Path, "/api/") {
				handlers.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// maxBodySizeMiddleware caps request bodies on management routes. The /mcp
// mount is exempt: tool call arguments can be large and the proxied APIs set
// their own limits.
func (s *Server) maxBodySizeMiddleware(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && !strings.HasPrefix(r.URL.Path, "/mcp") {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code and byte count a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.written += n
	return n, err
}
