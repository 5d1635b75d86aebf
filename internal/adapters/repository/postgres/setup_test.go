package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/lunchpoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db))
	return db
}

func newPoll(names ...string) *domain.Poll {
	pollID := uuid.New()
	now := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)

	poll := &domain.Poll{
		ID:        pollID,
		Title:     "Friday lunch",
		CreatedAt: now,
	}
	for i, name := range names {
		poll.Candidates = append(poll.Candidates, domain.Candidate{
			ID:        uuid.New(),
			PollID:    pollID,
			Name:      name,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}
	return poll
}

func newVote(poll *domain.Poll, row int, userID uuid.UUID) *domain.Vote {
	return &domain.Vote{
		ID:          uuid.New(),
		PollID:      poll.ID,
		CandidateID: poll.Candidates[row].ID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}

func createUser(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := db.Exec("INSERT INTO users (id, email, name) VALUES ($1, $2, $3)",
		userID, fmt.Sprintf("user-%s@example.com", userID), "Lunch Goer")
	require.NoError(t, err)
	return userID
}
