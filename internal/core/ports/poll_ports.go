package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	AddCandidate(ctx context.Context, candidate *domain.Candidate) error
	GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	// ListCandidates returns the poll's candidates in proposal order. Voted is
	// set against voterID; uuid.Nil marks none as voted.
	ListCandidates(ctx context.Context, pollID, voterID uuid.UUID) ([]domain.Candidate, error)
}

type CreatePollInput struct {
	Title       string
	Description string
	Candidates  []string
}

type ListPollsInput struct {
	Page int
}

type AddCandidateInput struct {
	PollID uuid.UUID
	Name   string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	AddCandidate(ctx context.Context, input AddCandidateInput) (*domain.Candidate, error)
	ListCandidates(ctx context.Context, pollID, voterID uuid.UUID) ([]domain.Candidate, error)
}
