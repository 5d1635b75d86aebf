package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

// SummarizeVotes recounts the active votes of every candidate in the poll.
// Candidates without votes are written as zero so a switched vote does not
// leave a stale count behind.
func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	query := `
		INSERT INTO poll_results (poll_id, candidate_id, vote_count, last_updated_at)
		SELECT c.poll_id, c.id, COUNT(v.id), NOW()
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id AND v.deleted_at IS NULL
		WHERE c.poll_id = $1
		GROUP BY c.poll_id, c.id
		ON CONFLICT (poll_id, candidate_id) DO UPDATE
		SET vote_count = EXCLUDED.vote_count,
		    last_updated_at = NOW();
	`

	_, err := r.db.ExecContext(ctx, query, pollID)
	if err != nil {
		return fmt.Errorf("failed to summarize votes for poll %s: %w", pollID, err)
	}

	return nil
}
