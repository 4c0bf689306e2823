package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matheob255/life-hub/internal/core"
	applog "github.com/matheob255/life-hub/internal/log"
)

type categoryResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Icon             string `json:"icon,omitempty"`
	Color            string `json:"color,omitempty"`
	DisplayOrder     int    `json:"displayOrder"`
	SubcategoryCount int    `json:"subcategoryCount"`
	CreatedAt        string `json:"createdAt"`
}

type subcategoryResponse struct {
	ID         int64         `json:"id"`
	CategoryID int64         `json:"categoryId"`
	Name       string        `json:"name"`
	Icon       string        `json:"icon,omitempty"`
	Mode       core.Mode     `json:"mode"`
	Columns    []core.Column `json:"columns,omitempty"`
	CreatedAt  string        `json:"createdAt"`
}

type createSubcategoryRequest struct {
	Name    string        `json:"name"`
	Icon    string        `json:"icon,omitempty"`
	Mode    string        `json:"mode"`
	Columns []core.Column `json:"columns,omitempty"`
}

func toSubcategoryResponse(sub core.Subcategory) subcategoryResponse {
	return subcategoryResponse{
		ID:         sub.ID,
		CategoryID: sub.CategoryID,
		Name:       sub.Name,
		Icon:       sub.Icon,
		Mode:       sub.Mode,
		Columns:    sub.Columns,
		CreatedAt:  sub.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.taxonomy.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(summaries))
	for _, c := range summaries {
		out = append(out, categoryResponse{
			ID:               c.ID,
			Name:             c.Name,
			Icon:             c.Icon,
			Color:            c.Color,
			DisplayOrder:     c.DisplayOrder,
			SubcategoryCount: c.SubcategoryCount,
			CreatedAt:        c.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Cascade: every subcategory under it goes, so the whole view cache
	// namespace is suspect. Subcategory IDs are unknown here, so drop by
	// listing first.
	subs, err := s.taxonomy.ListSubcategories(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.taxonomy.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	for _, sub := range subs {
		s.views.Invalidate(sub.ID)
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Category deleted",
		applog.FieldCategoryID, id, "subcategories", len(subs))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	subs, err := s.taxonomy.ListSubcategories(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]subcategoryResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toSubcategoryResponse(sub))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createSubcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, core.ErrInvalidPayload)
		return
	}
	sub, err := s.taxonomy.CreateSubcategory(r.Context(), core.Subcategory{
		CategoryID: id,
		Name:       req.Name,
		Icon:       req.Icon,
		Mode:       core.Mode(req.Mode),
		Columns:    req.Columns,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubcategoryResponse(sub))
}

func (s *Server) handleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.taxonomy.DeleteSubcategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.views.Invalidate(id)
	w.WriteHeader(http.StatusNoContent)
}
