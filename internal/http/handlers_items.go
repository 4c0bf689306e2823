package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/matheob255/life-hub/internal/core"
	applog "github.com/matheob255/life-hub/internal/log"
	"github.com/matheob255/life-hub/internal/modes"
)

type itemResponse struct {
	ID            int64  `json:"id"`
	SubcategoryID int64  `json:"subcategoryId"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Value         string `json:"value,omitempty"`
	Date          string `json:"date,omitempty"`
	Completed     bool   `json:"completed"`
	Urgency       string `json:"urgency,omitempty"`
	Transaction   string `json:"transaction,omitempty"`
	Amount        string `json:"amount,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toItemResponse(it core.Item) itemResponse {
	return itemResponse{
		ID:            it.ID,
		SubcategoryID: it.SubcategoryID,
		Title:         it.Title,
		Description:   it.Description,
		Value:         it.Value,
		Date:          it.Date,
		Completed:     it.Completed,
		Urgency:       string(it.Urgency),
		Transaction:   string(it.Transaction),
		Amount:        it.Amount,
		CreatedAt:     it.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:     it.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func toItemResponses(items []core.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

func readBody(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, core.ErrInvalidPayload
	}
	return body, nil
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.items.List(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, written, err := s.items.Create(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !written {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.views.Invalidate(id)
	writeJSON(w, http.StatusCreated, toItemResponses(items))
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := s.items.Toggle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.views.Invalidate(item.SubcategoryID)
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Item toggled",
		applog.FieldItemID, id, "completed", item.Completed)
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.items.Patch(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(items) > 0 {
		s.views.Invalidate(items[0].SubcategoryID)
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	subID, err := s.items.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.views.Invalidate(subID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req := modes.NewViewRequest(time.Now())
	if month := r.URL.Query().Get("month"); month != "" {
		if _, _, err := core.ParseMonthKey(month); err != nil {
			writeError(w, r, err)
			return
		}
		req.Month = month
	}

	if cached, ok := s.views.Get(id, req.Month); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	view, err := s.items.View(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload, err := json.Marshal(view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.views.Set(id, req.Month, payload)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
