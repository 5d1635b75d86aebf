package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
)

func TestSummarizeAllVotes(t *testing.T) {
	polls := []*domain.Poll{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}

	pollRepo := &mockPollRepository{}
	pollRepo.On("GetAll", mock.Anything).Return(polls, nil)
	results := &mockPollResultRepository{}
	for _, p := range polls {
		results.On("SummarizeVotes", mock.Anything, p.ID).Return(nil).Once()
	}

	require.NoError(t, NewSummaryService(pollRepo, results).SummarizeAllVotes(context.Background()))
	results.AssertExpectations(t)
}

func TestSummarizeAllVotesReportsFailure(t *testing.T) {
	failing := uuid.New()
	polls := []*domain.Poll{{ID: uuid.New()}, {ID: failing}}

	pollRepo := &mockPollRepository{}
	pollRepo.On("GetAll", mock.Anything).Return(polls, nil)
	results := &mockPollResultRepository{}
	results.On("SummarizeVotes", mock.Anything, polls[0].ID).Return(nil)
	results.On("SummarizeVotes", mock.Anything, failing).Return(assert.AnError)

	err := NewSummaryService(pollRepo, results).SummarizeAllVotes(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), failing.String())
}

func TestSummarizeAllVotesFetchFailure(t *testing.T) {
	pollRepo := &mockPollRepository{}
	pollRepo.On("GetAll", mock.Anything).Return(nil, assert.AnError)

	err := NewSummaryService(pollRepo, &mockPollResultRepository{}).SummarizeAllVotes(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestUserServiceGetByID(t *testing.T) {
	id := uuid.New()
	repo := &mockUserRepository{}
	repo.On("GetByID", mock.Anything, id).Return(&domain.User{ID: id, Name: "Lunch Goer"}, nil)

	user, err := NewUserService(repo).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Lunch Goer", user.Name)

	other := uuid.New()
	repo.On("GetByID", mock.Anything, other).Return(nil, assert.AnError)
	_, err = NewUserService(repo).GetByID(context.Background(), other)
	assert.ErrorIs(t, err, assert.AnError)
}
