package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Candidates  []Candidate `json:"candidates"`
	CreatedAt   time.Time   `json:"created_at"`
}
