package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type mockPollService struct {
	mock.Mock
}

func (m *mockPollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	args := m.Called(ctx, input)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	args := m.Called(ctx, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	args := m.Called(ctx, input)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollService) AddCandidate(ctx context.Context, input ports.AddCandidateInput) (*domain.Candidate, error) {
	args := m.Called(ctx, input)
	c, _ := args.Get(0).(*domain.Candidate)
	return c, args.Error(1)
}

func (m *mockPollService) ListCandidates(ctx context.Context, pollID, voterID uuid.UUID) ([]domain.Candidate, error) {
	args := m.Called(ctx, pollID, voterID)
	items, _ := args.Get(0).([]domain.Candidate)
	return items, args.Error(1)
}

type mockVoteService struct {
	mock.Mock
}

func (m *mockVoteService) Vote(ctx context.Context, input ports.VoteInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockVoteService) Unvote(ctx context.Context, pollID, userID uuid.UUID) error {
	return m.Called(ctx, pollID, userID).Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
