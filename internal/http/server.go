// Package http is the JSON boundary of the service. Routes use the
// method-pattern mux; every mutating route runs behind the trace, rate
// limit and security header middleware.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matheob255/life-hub/internal/cache"
	"github.com/matheob255/life-hub/internal/config"
	applog "github.com/matheob255/life-hub/internal/log"
	"github.com/matheob255/life-hub/internal/services"
)

type Server struct {
	cfg      *config.Config
	items    *services.ItemService
	taxonomy *services.TaxonomyService
	views    *cache.ViewCache
	logger   *applog.Logger
	limiter  *limiter
	srv      *http.Server
}

func NewServer(cfg *config.Config, items *services.ItemService, taxonomy *services.TaxonomyService, views *cache.ViewCache, logger *applog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		items:    items,
		taxonomy: taxonomy,
		views:    views,
		logger:   logger.WithComponent(applog.ComponentHTTP),
		limiter:  newLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("DELETE /categories/{id}", s.handleDeleteCategory)
	mux.HandleFunc("GET /categories/{id}/subcategories", s.handleListSubcategories)
	mux.HandleFunc("POST /categories/{id}/subcategories", s.handleCreateSubcategory)
	mux.HandleFunc("DELETE /subcategories/{id}", s.handleDeleteSubcategory)

	mux.HandleFunc("GET /subcategories/{id}/items", s.handleListItems)
	mux.HandleFunc("POST /subcategories/{id}/items", s.handleCreateItem)
	mux.HandleFunc("GET /subcategories/{id}/view", s.handleView)
	mux.HandleFunc("POST /items/{id}/toggle", s.handleToggleItem)
	mux.HandleFunc("PATCH /items/{id}", s.handlePatchItem)
	mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)

	handler := s.trace(s.rateLimit(securityHeaders(mux)))
	s.srv = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           applog.Middleware(s.logger)(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the full middleware chain, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "HTTP server shutting down")
	return s.srv.Shutdown(ctx)
}

// Janitor prunes idle rate-limit buckets until ctx is done.
func (s *Server) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.limiter.sweep(10 * time.Minute)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	// Readiness is a cheap store round trip through the taxonomy.
	if _, err := s.taxonomy.ListCategories(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
