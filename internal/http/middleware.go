package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "github.com/matheob255/life-hub/internal/log"
)

// statusWriter captures the status code for the completion log line.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// trace assigns a request ID, exposes it in the response, and logs every
// completed request at a status-derived level.
func (s *Server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		ip := clientIP(r)

		logger := applog.FromContext(r.Context()).With(applog.FieldRequestID, requestID)
		ctx := applog.IntoContext(r.Context(), logger)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		applog.LogRequest(ctx, r, applog.RequestLog{
			RequestID:  requestID,
			ClientIP:   ip,
			StatusCode: sw.status,
			DurationMS: time.Since(start).Milliseconds(),
		})
	})
}

// limiter is a per-client token bucket. Buckets refill continuously at
// rps and cap at burst; stale clients are pruned on sweep.
type limiter struct {
	mu      sync.Mutex
	rps     float64
	burst   float64
	clients map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func newLimiter(rps float64, burst int) *limiter {
	return &limiter{
		rps:     rps,
		burst:   float64(burst),
		clients: make(map[string]*bucket),
	}
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.clients[ip]
	if !ok {
		l.clients[ip] = &bucket{tokens: l.burst - 1, lastSeen: now}
		return true
	}
	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rps
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastSeen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *limiter) sweep(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	for ip, b := range l.clients {
		if b.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// rateLimit applies the limiter to mutating methods only; reads are
// never throttled.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
			if !s.limiter.allow(clientIP(r)) {
				applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
					applog.FieldClientIP, clientIP(r),
					applog.FieldPath, r.URL.Path,
				)
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// securityHeaders applies the baseline header set for a JSON API.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
