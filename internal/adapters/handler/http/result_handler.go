package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ResultHandler struct {
	service ports.ResultService
}

func NewResultHandler(service ports.ResultService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// GetResults godoc
// @Summary      Returns poll results
// @Description  Creator only: option tallies in creation order plus the voter activity list ordered by submission time.
// @Tags         results
// @Success      200
// @Failure      403
// @Failure      404
// @Router       /api/polls/{id}/results [get]
func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	results, err := h.service.GetResults(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPollID):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrPollNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrPermissionDenied):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, domain.ErrUnavailable):
			http.Error(w, "service unavailable, retry shortly", http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
