package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matheob255/life-hub/internal/core"
	applog "github.com/matheob255/life-hub/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	// Encoding failures past this point cannot change the status line.
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the domain error taxonomy onto status codes. Validation
// refusals carry no body: the write is silently aborted.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidation(err):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, core.ErrConstraint):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "constraint violation"})
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			applog.FieldError, err.Error(),
			applog.FieldPath, r.URL.Path,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, core.ErrNotFound
	}
	return id, nil
}
