package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	logger  *zap.Logger
}

func NewVoteHandler(service ports.VoteService, logger *zap.Logger) *VoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &VoteHandler{
		service: service,
		logger:  logger,
	}
}

type voteRequest struct {
	CandidateID uuid.UUID `json:"candidate_id"`
}

// VoteOnPoll godoc
// @Summary      Votes for a restaurant
// @Description  Voting for another restaurant of the same poll replaces the previous vote.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      401
// @Failure      409
// @Router       /polls/{id}/votes [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, domain.ErrInvalidPollID.Error(), http.StatusBadRequest)
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	err = h.service.Vote(r.Context(), ports.VoteInput{
		PollID:      pollID,
		CandidateID: req.CandidateID,
		UserID:      userID,
	})
	if err != nil {
		h.logger.Warn("vote failed", zap.Stringer("poll_id", pollID), zap.Error(err))
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *VoteHandler) Unvote(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, domain.ErrInvalidPollID.Error(), http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.Unvote(r.Context(), pollID, userID); err != nil {
		h.logger.Warn("unvote failed", zap.Stringer("poll_id", pollID), zap.Error(err))
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
