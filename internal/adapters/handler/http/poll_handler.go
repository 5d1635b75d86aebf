package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
	logger  *zap.Logger
}

func NewPollHandler(service ports.PollService, logger *zap.Logger) *PollHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PollHandler{
		service: service,
		logger:  logger,
	}
}

type createPollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Candidates  []string `json:"candidates"`
}

// CreatePoll godoc
// @Summary      Creates a lunch poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Success      201 {object} domain.Poll
// @Failure      400
// @Router       /polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		Candidates:  req.Candidates,
	})
	if err != nil {
		h.fail(w, "create poll", err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}

	polls, err := h.service.ListPolls(r.Context(), ports.ListPollsInput{Page: page})
	if err != nil {
		h.fail(w, "list polls", err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, polls)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get poll", err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

type addCandidateRequest struct {
	Name string `json:"name"`
}

// AddCandidate godoc
// @Summary      Proposes a restaurant
// @Tags         polls
// @Accept       json
// @Produce      json
// @Success      201 {object} domain.Candidate
// @Failure      400
// @Failure      404
// @Router       /polls/{id}/candidates [post]
func (h *PollHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, domain.ErrInvalidPollID.Error(), http.StatusBadRequest)
		return
	}

	var req addCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.AddCandidate(r.Context(), ports.AddCandidateInput{PollID: pollID, Name: req.Name})
	if err != nil {
		h.fail(w, "add candidate", err)
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

func (h *PollHandler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
	writeError(w, err)
}
