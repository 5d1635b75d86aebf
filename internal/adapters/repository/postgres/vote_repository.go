package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, softDeleteVoteQuery, vote.PollID, vote.UserID)
	if err != nil {
		return fmt.Errorf("failed to replace previous vote: %w", err)
	}

	query := `
		INSERT INTO votes (id, poll_id, candidate_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, query, vote.ID, vote.PollID, vote.CandidateID, vote.UserID, vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *voteRepository) GetActiveVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT id, poll_id, candidate_id, user_id, created_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	var v domain.Vote
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(&v.ID, &v.PollID, &v.CandidateID, &v.UserID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return &v, nil
}

const softDeleteVoteQuery = `
	UPDATE votes SET deleted_at = NOW()
	WHERE poll_id = $1 AND user_id = $2 AND deleted_at IS NULL
`

func (r *voteRepository) DeleteVote(ctx context.Context, pollID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, softDeleteVoteQuery, pollID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}
