package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	summary  ports.SummaryService
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, summary ports.SummaryService) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		summary:  summary,
	}
}

// Vote makes the candidate the user's active vote on the poll. Voting for a
// different candidate switches the vote.
func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) error {
	if input.UserID == uuid.Nil {
		return domain.ErrMissingVoter
	}

	candidate, err := s.pollRepo.GetCandidate(ctx, input.CandidateID)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return domain.ErrInvalidCandidate
		}
		return err
	}
	if candidate.PollID != input.PollID {
		return domain.ErrInvalidCandidate
	}

	current, err := s.voteRepo.GetActiveVote(ctx, input.PollID, input.UserID)
	if err != nil {
		return err
	}
	if current != nil && current.CandidateID == input.CandidateID {
		return domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		PollID:      input.PollID,
		CandidateID: input.CandidateID,
		UserID:      input.UserID,
		CreatedAt:   time.Now(),
	}

	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		return err
	}

	return s.resummarize(ctx, input.PollID)
}

func (s *voteService) Unvote(ctx context.Context, pollID, userID uuid.UUID) error {
	current, err := s.voteRepo.GetActiveVote(ctx, pollID, userID)
	if err != nil {
		return err
	}

	if current == nil {
		return domain.ErrUserNotVoted
	}

	if err := s.voteRepo.DeleteVote(ctx, pollID, userID); err != nil {
		return err
	}

	return s.resummarize(ctx, pollID)
}

func (s *voteService) resummarize(ctx context.Context, pollID uuid.UUID) error {
	if err := s.summary.SummarizePoll(ctx, pollID); err != nil {
		return fmt.Errorf("vote stored but tally not refreshed: %w", err)
	}
	return nil
}
