package ports

import (
	"context"

	"github.com/google/uuid"
)

type PollResultRepository interface {
	SummarizeVotes(ctx context.Context, pollID uuid.UUID) error
}

type SummaryService interface {
	SummarizeAllVotes(ctx context.Context) error
	SummarizePoll(ctx context.Context, pollID uuid.UUID) error
}
