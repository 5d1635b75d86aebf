package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeError maps domain errors to status codes. Anything unknown is a 500
// and its detail is not exposed.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPollID),
		errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrMissingPollID),
		errors.Is(err, domain.ErrEmptyCandidateName),
		errors.Is(err, domain.ErrInvalidCandidate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrMissingVoter):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrPollNotFound),
		errors.Is(err, domain.ErrCandidateNotFound),
		errors.Is(err, domain.ErrUserNotVoted):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAlreadyVoted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
	}
}
