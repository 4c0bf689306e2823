package log

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// Middleware stores the logger in each request's context so handlers can
// log with the request's accumulated attributes.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), loggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IntoContext returns a context carrying the logger.
func IntoContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext extracts the request logger, falling back to the slog
// default when none was installed.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: ComponentApp}
}

// RequestLog summarizes one handled HTTP request.
type RequestLog struct {
	RequestID  string
	ClientIP   string
	StatusCode int
	DurationMS int64
}

// LogRequest writes the one-line completion record for a request, at a
// level derived from the status code.
func LogRequest(ctx context.Context, r *http.Request, rec RequestLog) {
	level := slog.LevelInfo
	switch {
	case rec.StatusCode >= 500:
		level = slog.LevelError
	case rec.StatusCode >= 400:
		level = slog.LevelWarn
	}
	FromContext(ctx).log(ctx, level, "HTTP request completed",
		FieldMethod, r.Method,
		FieldPath, r.URL.Path,
		FieldStatusCode, rec.StatusCode,
		FieldDuration, rec.DurationMS,
		FieldRequestID, rec.RequestID,
		FieldClientIP, rec.ClientIP,
	)
}
