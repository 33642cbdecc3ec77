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

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	OptionID  uuid.UUID `json:"option_id"`
	StudentID string    `json:"student_id"`
}

// VoteOnPoll godoc
// @Summary      Submits a vote
// @Description  Records at most one vote per student per poll. The student id is hashed before storage and is never persisted raw.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400  "invalid option or malformed input"
// @Failure      404  "poll not found"
// @Failure      409  "already voted, or poll closed"
// @Router       /api/polls/{id}/votes [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	pollIDStr := chi.URLParam(r, "id")
	pollID, err := uuid.Parse(pollIDStr)
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.VoteInput{
		PollID:    pollID,
		OptionID:  req.OptionID,
		StudentID: req.StudentID,
	}

	// Each failure kind maps to its own status and message: the voting page
	// tells "already voted" apart from "poll closed".
	if err := h.service.Vote(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOption), errors.Is(err, domain.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrAlreadyVoted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrPollEnded):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrPollNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrUnavailable):
			http.Error(w, "service unavailable, retry shortly", http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}
