package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type mockPollRepository struct {
	mock.Mock
}

func (m *mockPollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	return m.Called(ctx, poll).Error(0)
}

func (m *mockPollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	args := m.Called(ctx, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	args := m.Called(ctx)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	args := m.Called(ctx, limit, offset)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollRepository) AddCandidate(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *mockPollRepository) GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Candidate)
	return c, args.Error(1)
}

func (m *mockPollRepository) ListCandidates(ctx context.Context, pollID, voterID uuid.UUID) ([]domain.Candidate, error) {
	args := m.Called(ctx, pollID, voterID)
	items, _ := args.Get(0).([]domain.Candidate)
	return items, args.Error(1)
}

type mockVoteRepository struct {
	mock.Mock
}

func (m *mockVoteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	return m.Called(ctx, vote).Error(0)
}

func (m *mockVoteRepository) GetActiveVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	args := m.Called(ctx, pollID, userID)
	v, _ := args.Get(0).(*domain.Vote)
	return v, args.Error(1)
}

func (m *mockVoteRepository) DeleteVote(ctx context.Context, pollID, userID uuid.UUID) error {
	return m.Called(ctx, pollID, userID).Error(0)
}

type mockPollResultRepository struct {
	mock.Mock
}

func (m *mockPollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	return m.Called(ctx, pollID).Error(0)
}

type mockSummaryService struct {
	mock.Mock
}

func (m *mockSummaryService) SummarizeAllVotes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSummaryService) SummarizePoll(ctx context.Context, pollID uuid.UUID) error {
	return m.Called(ctx, pollID).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

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

// inlineDispatcher runs posted functions immediately on the posting
// goroutine, one at a time.
type inlineDispatcher struct {
	mu      sync.Mutex
	stopped bool
}

func (d *inlineDispatcher) Post(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	fn()
	return true
}

func (d *inlineDispatcher) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
}

// stateRecorder is a StateListener that keeps every state it receives.
type stateRecorder struct {
	mu     sync.Mutex
	states []domain.CandidateState
}

func (r *stateRecorder) listen(state domain.CandidateState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) all() []domain.CandidateState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CandidateState(nil), r.states...)
}

func (r *stateRecorder) count() int {
	return len(r.all())
}

func (r *stateRecorder) last() domain.CandidateState {
	all := r.all()
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func candidates(names ...string) []domain.Candidate {
	pollID := uuid.New()
	items := make([]domain.Candidate, 0, len(names))
	for _, name := range names {
		items = append(items, domain.Candidate{ID: uuid.New(), PollID: pollID, Name: name})
	}
	return items
}
