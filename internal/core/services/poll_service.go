package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

const pollsPerPage = 10

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	pollID := uuid.New()
	now := time.Now()

	poll := &domain.Poll{
		ID:          pollID,
		Title:       title,
		Description: input.Description,
		Candidates:  []domain.Candidate{},
		CreatedAt:   now,
	}

	for _, name := range input.Candidates {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		poll.Candidates = append(poll.Candidates, domain.Candidate{
			ID:        uuid.New(),
			PollID:    pollID,
			Name:      name,
			CreatedAt: now,
		})
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	return s.repo.List(ctx, pollsPerPage, (page-1)*pollsPerPage)
}

func (s *pollService) AddCandidate(ctx context.Context, input ports.AddCandidateInput) (*domain.Candidate, error) {
	if input.PollID == uuid.Nil {
		return nil, domain.ErrMissingPollID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrEmptyCandidateName
	}

	if _, err := s.repo.GetByID(ctx, input.PollID); err != nil {
		return nil, err
	}

	candidate := &domain.Candidate{
		ID:        uuid.New(),
		PollID:    input.PollID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := s.repo.AddCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to add candidate: %w", err)
	}

	return candidate, nil
}

func (s *pollService) ListCandidates(ctx context.Context, pollID, voterID uuid.UUID) ([]domain.Candidate, error) {
	if pollID == uuid.Nil {
		return nil, domain.ErrMissingPollID
	}

	return s.repo.ListCandidates(ctx, pollID, voterID)
}
