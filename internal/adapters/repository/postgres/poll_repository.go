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

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, title, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, queryPoll, poll.ID, poll.Title, poll.Description, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertCandidateQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare candidate statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range poll.Candidates {
		if _, err := stmt.ExecContext(ctx, c.ID, c.PollID, c.Name, c.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert candidate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, title, description, created_at
		FROM polls
		WHERE id = $1 AND deleted_at IS NULL
	`

	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, query, id).Scan(&poll.ID, &poll.Title, &poll.Description, &poll.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	candidates, err := r.ListCandidates(ctx, poll.ID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	poll.Candidates = candidates

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, description, created_at
		FROM polls
		WHERE deleted_at IS NULL
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

// List orders polls by total votes, then newest first.
func (r *pollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	query := `
		SELECT p.id, p.title, p.description, p.created_at
		FROM polls p
		LEFT JOIN poll_results pr ON p.id = pr.poll_id
		WHERE p.deleted_at IS NULL
		GROUP BY p.id
		ORDER BY COALESCE(SUM(pr.vote_count), 0) DESC, p.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) scanPolls(ctx context.Context, rows *sql.Rows) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(&poll.ID, &poll.Title, &poll.Description, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	// candidates are fetched after the rows are drained so only one
	// connection is held at a time
	for _, poll := range polls {
		candidates, err := r.ListCandidates(ctx, poll.ID, uuid.Nil)
		if err != nil {
			return nil, err
		}
		poll.Candidates = candidates
	}
	return polls, nil
}

const insertCandidateQuery = `
	INSERT INTO candidates (id, poll_id, name, created_at)
	VALUES ($1, $2, $3, $4)
`

func (r *pollRepository) AddCandidate(ctx context.Context, candidate *domain.Candidate) error {
	_, err := r.db.ExecContext(ctx, insertCandidateQuery, candidate.ID, candidate.PollID, candidate.Name, candidate.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *pollRepository) GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `
		SELECT c.id, c.poll_id, c.name, c.created_at, COALESCE(pr.vote_count, 0)
		FROM candidates c
		LEFT JOIN poll_results pr ON pr.poll_id = c.poll_id AND pr.candidate_id = c.id
		WHERE c.id = $1
	`

	var c domain.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.PollID, &c.Name, &c.CreatedAt, &c.VoteCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

func (r *pollRepository) ListCandidates(ctx context.Context, pollID, voterID uuid.UUID) ([]domain.Candidate, error) {
	query := `
		SELECT c.id, c.poll_id, c.name, c.created_at, COALESCE(pr.vote_count, 0),
			EXISTS (
				SELECT 1 FROM votes v
				WHERE v.candidate_id = c.id AND v.user_id = $2 AND v.deleted_at IS NULL
			)
		FROM candidates c
		LEFT JOIN poll_results pr ON pr.poll_id = c.poll_id AND pr.candidate_id = c.id
		WHERE c.poll_id = $1
		ORDER BY c.created_at, c.id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.PollID, &c.Name, &c.CreatedAt, &c.VoteCount, &c.Voted); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}
