package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
)

type VoteRepository interface {
	// SaveVote stores vote as the user's active vote on the poll, soft
	// deleting any previous one.
	SaveVote(ctx context.Context, vote *domain.Vote) error
	GetActiveVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error)
	DeleteVote(ctx context.Context, pollID, userID uuid.UUID) error
}

type VoteInput struct {
	PollID      uuid.UUID
	CandidateID uuid.UUID
	UserID      uuid.UUID
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) error
	Unvote(ctx context.Context, pollID, userID uuid.UUID) error
}
