package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

var testSecret = []byte("test-secret")

type testApp struct {
	polls   *mockPollService
	votes   *mockVoteService
	users   *mockUserService
	handler http.Handler
}

func newTestApp() *testApp {
	app := &testApp{
		polls: &mockPollService{},
		votes: &mockVoteService{},
		users: &mockUserService{},
	}
	app.handler = NewHandler(
		NewPollHandler(app.polls, nil),
		NewVoteHandler(app.votes, nil),
		NewUserHandler(app.users),
		testSecret,
		[]string{"*"},
		nil,
	)
	return app
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, sub string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   sub,
		"email": "voter@example.com",
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestCreatePoll(t *testing.T) {
	app := newTestApp()
	poll := &domain.Poll{ID: uuid.New(), Title: "Friday lunch"}
	app.polls.On("Create", mock.Anything, ports.CreatePollInput{
		Title:      "Friday lunch",
		Candidates: []string{"Pho Saigon"},
	}).Return(poll, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/polls", jsonBody(t, map[string]any{
		"title":      "Friday lunch",
		"candidates": []string{"Pho Saigon"},
	}))
	rec := app.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Poll
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, poll.ID, got.ID)
	app.polls.AssertExpectations(t)
}

func TestCreatePollValidation(t *testing.T) {
	app := newTestApp()
	app.polls.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrTitleRequired)

	rec := app.do(httptest.NewRequest(http.MethodPost, "/api/polls", jsonBody(t, map[string]any{"title": " "})))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(httptest.NewRequest(http.MethodPost, "/api/polls", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPolls(t *testing.T) {
	app := newTestApp()
	app.polls.On("ListPolls", mock.Anything, ports.ListPollsInput{Page: 2}).Return(nil, nil)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/polls?page=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = app.do(httptest.NewRequest(http.MethodGet, "/api/polls?page=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPoll(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"found", nil, http.StatusOK},
		{"invalid id", domain.ErrInvalidPollID, http.StatusBadRequest},
		{"not found", domain.ErrPollNotFound, http.StatusNotFound},
		{"internal", fmt.Errorf("failed to get poll: %w", assert.AnError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			var poll *domain.Poll
			if tt.err == nil {
				poll = &domain.Poll{ID: uuid.New(), Title: "Friday lunch"}
			}
			app.polls.On("GetPoll", mock.Anything, "abc").Return(poll, tt.err)

			rec := app.do(httptest.NewRequest(http.MethodGet, "/api/polls/abc", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
		})
	}
}

func TestAddCandidate(t *testing.T) {
	pollID := uuid.New()

	t.Run("created", func(t *testing.T) {
		app := newTestApp()
		candidate := &domain.Candidate{ID: uuid.New(), PollID: pollID, Name: "Curry House"}
		app.polls.On("AddCandidate", mock.Anything, ports.AddCandidateInput{PollID: pollID, Name: "Curry House"}).Return(candidate, nil)

		rec := app.do(httptest.NewRequest(http.MethodPost, "/api/polls/"+pollID.String()+"/candidates", jsonBody(t, map[string]string{"name": "Curry House"})))
		require.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Candidate
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "Curry House", got.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		app := newTestApp()
		app.polls.On("AddCandidate", mock.Anything, mock.Anything).Return(nil, domain.ErrEmptyCandidateName)

		rec := app.do(httptest.NewRequest(http.MethodPost, "/api/polls/"+pollID.String()+"/candidates", jsonBody(t, map[string]string{"name": ""})))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "candidate name is required")
	})

	t.Run("bad poll id", func(t *testing.T) {
		app := newTestApp()
		rec := app.do(httptest.NewRequest(http.MethodPost, "/api/polls/nope/candidates", jsonBody(t, map[string]string{"name": "x"})))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		app.polls.AssertNotCalled(t, "AddCandidate", mock.Anything, mock.Anything)
	})
}

func TestVoteRequiresVoter(t *testing.T) {
	app := newTestApp()
	url := "/api/polls/" + uuid.NewString() + "/votes"

	rec := app.do(httptest.NewRequest(http.MethodPost, url, jsonBody(t, map[string]any{"candidate_id": uuid.New()})))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, url, jsonBody(t, map[string]any{"candidate_id": uuid.New()}))
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), -time.Minute))
	rec = app.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, url, jsonBody(t, map[string]any{"candidate_id": uuid.New()}))
	req.Header.Set("Authorization", "Bearer "+signToken(t, "not-a-uuid", time.Minute))
	rec = app.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	app.votes.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything)
}

func TestVoteOnPoll(t *testing.T) {
	pollID := uuid.New()
	candidateID := uuid.New()
	userID := uuid.New()
	input := ports.VoteInput{PollID: pollID, CandidateID: candidateID, UserID: userID}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"same candidate", domain.ErrAlreadyVoted, http.StatusConflict},
		{"foreign candidate", domain.ErrInvalidCandidate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.votes.On("Vote", mock.Anything, input).Return(tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/polls/"+pollID.String()+"/votes", jsonBody(t, map[string]any{"candidate_id": candidateID}))
			req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, userID.String(), time.Minute)})
			rec := app.do(req)

			assert.Equal(t, tt.status, rec.Code)
			app.votes.AssertExpectations(t)
		})
	}
}

func TestUnvote(t *testing.T) {
	pollID := uuid.New()
	userID := uuid.New()

	app := newTestApp()
	app.votes.On("Unvote", mock.Anything, pollID, userID).Return(domain.ErrUserNotVoted).Once()
	app.votes.On("Unvote", mock.Anything, pollID, userID).Return(nil).Once()

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "/api/polls/"+pollID.String()+"/votes", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID.String(), time.Minute))
		return req
	}

	assert.Equal(t, http.StatusNotFound, app.do(newReq()).Code)
	assert.Equal(t, http.StatusCreated, app.do(newReq()).Code)
	app.votes.AssertExpectations(t)
}

func TestGetMe(t *testing.T) {
	userID := uuid.New()
	app := newTestApp()
	app.users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Name: "Lunch Goer"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID.String(), time.Minute))
	rec := app.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Lunch Goer", got.Name)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodOptions, "/api/polls", nil)
	req.Header.Set("Origin", "http://lunch.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := app.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
