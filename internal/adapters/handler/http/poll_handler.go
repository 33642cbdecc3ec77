package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title   string     `json:"title"`
	EndDate *time.Time `json:"end_date"`
	Options []string   `json:"options"`
}

type editPollRequest struct {
	Title   string     `json:"title"`
	EndDate *time.Time `json:"end_date"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  Creates a poll with its options. The poll starts active and belongs to the authenticated teacher.
// @Tags         polls
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      401
// @Router       /api/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}
	userName, _ := r.Context().Value(UserNameKey).(string)

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreatePollInput{
		Title:         req.Title,
		EndDate:       req.EndDate,
		Options:       req.Options,
		CreatedBy:     userID,
		CreatedByName: userName,
	}

	poll, err := h.service.Create(r.Context(), input)
	if err != nil {
		writePollError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(poll); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ListActivePolls godoc
// @Summary      Lists active polls
// @Description  Returns the polls students can currently vote on, newest first. Tallies are not included.
// @Tags         polls
// @Success      200
// @Router       /api/polls [get]
func (h *PollHandler) ListActivePolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListActive(r.Context())
	if err != nil {
		writePollError(w, err)
		return
	}

	writePolls(w, polls)
}

// ListMyPolls godoc
// @Summary      Lists the authenticated teacher's polls
// @Tags         polls
// @Success      200
// @Failure      401
// @Router       /api/polls/mine [get]
func (h *PollHandler) ListMyPolls(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	polls, err := h.service.ListByCreator(r.Context(), userID)
	if err != nil {
		writePollError(w, err)
		return
	}

	writePolls(w, polls)
}

// GetPoll godoc
// @Summary      Returns one poll with its option names
// @Tags         polls
// @Success      200
// @Failure      404
// @Router       /api/polls/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing poll id", http.StatusBadRequest)
		return
	}

	poll, err := h.service.GetPoll(r.Context(), id)
	if err != nil {
		writePollError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(poll); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// EditPoll godoc
// @Summary      Edits a poll's title and end date
// @Description  Creator only. Options and recorded votes are never touched.
// @Tags         polls
// @Accept       json
// @Success      200
// @Failure      403
// @Failure      404
// @Router       /api/polls/{id} [patch]
func (h *PollHandler) EditPoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req editPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	poll, err := h.service.Edit(r.Context(), chi.URLParam(r, "id"), userID, ports.EditPollInput{
		Title:   req.Title,
		EndDate: req.EndDate,
	})
	if err != nil {
		writePollError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(poll); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ToggleStatus godoc
// @Summary      Toggles a poll between active and ended
// @Tags         polls
// @Success      200
// @Failure      403
// @Failure      404
// @Router       /api/polls/{id}/status [post]
func (h *PollHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	poll, err := h.service.ToggleStatus(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writePollError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(poll); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// DeletePoll godoc
// @Summary      Deletes a poll with its options and vote records
// @Tags         polls
// @Success      204
// @Failure      403
// @Failure      404
// @Router       /api/polls/{id} [delete]
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writePollError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writePolls(w http.ResponseWriter, polls []*domain.Poll) {
	if polls == nil {
		polls = []*domain.Poll{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(polls); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writePollError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPollID), errors.Is(err, domain.ErrInvalidInput):
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
}
