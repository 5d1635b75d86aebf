package domain

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a restaurant proposed in a poll.
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Name      string    `json:"name"`
	VoteCount int64     `json:"vote_count"`
	// Voted is true when the viewing voter's active vote is on this candidate.
	Voted     bool      `json:"voted"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Candidate) Label() string {
	return c.Name
}

// Selection is a candidate and its index in the list the user tapped.
type Selection struct {
	Candidate Candidate
	Position  int
}
