package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

type PollStateOption func(*PollStateService)

// WithPollID sets the poll the state is derived from. It must be set before
// Subscribe.
func WithPollID(id uuid.UUID) PollStateOption {
	return func(s *PollStateService) {
		s.pollID = id
	}
}

func WithVoterID(id uuid.UUID) PollStateOption {
	return func(s *PollStateService) {
		s.voterID = id
	}
}

// WithRefreshInterval reloads the candidates periodically while subscribed,
// so votes from other voters show up. Zero disables it.
func WithRefreshInterval(d time.Duration) PollStateOption {
	return func(s *PollStateService) {
		s.refreshInterval = d
	}
}

// PollStateService is the PollStateProvider for one poll and one voter. All
// emissions reach the listener through the dispatcher, in emission order.
type PollStateService struct {
	polls      ports.PollService
	votes      ports.VoteService
	dispatcher ports.Dispatcher
	logger     *zap.Logger

	pollID          uuid.UUID
	voterID         uuid.UUID
	refreshInterval time.Duration

	mu        sync.Mutex
	sub       *stateSubscription
	issued    uint64
	applied   uint64
	lastItems []domain.Candidate
}

var _ ports.PollStateProvider = (*PollStateService)(nil)

func NewPollStateService(polls ports.PollService, votes ports.VoteService, dispatcher ports.Dispatcher, logger *zap.Logger, opts ...PollStateOption) *PollStateService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &PollStateService{
		polls:      polls,
		votes:      votes,
		dispatcher: dispatcher,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.Stringer("poll_id", s.pollID))
	return s
}

type stateSubscription struct {
	svc      *PollStateService
	listener ports.StateListener
	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
}

func (sub *stateSubscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.cancel()

		s := sub.svc
		s.mu.Lock()
		if s.sub == sub {
			s.sub = nil
			s.lastItems = nil
		}
		s.mu.Unlock()

		s.logger.Debug("poll state unsubscribed")
	})
}

// Subscribe registers the single listener and starts the initial load, which
// emits Loading followed by Content or Error.
func (s *PollStateService) Subscribe(listener ports.StateListener) (ports.Subscription, error) {
	if s.pollID == uuid.Nil {
		return nil, domain.ErrMissingPollID
	}

	s.mu.Lock()
	if s.sub != nil {
		s.mu.Unlock()
		return nil, domain.ErrAlreadySubscribed
	}
	ctx, cancel := context.WithCancel(context.Background())
	sub := &stateSubscription{
		svc:      s,
		listener: listener,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.sub = sub
	s.mu.Unlock()

	s.logger.Debug("poll state subscribed")

	go s.reload(ctx, sub, true)
	if s.refreshInterval > 0 {
		go s.watch(sub)
	}

	return sub, nil
}

// Refresh reloads the candidates, emitting Loading first.
func (s *PollStateService) Refresh(ctx context.Context) {
	sub := s.subscription()
	if sub == nil {
		return
	}
	go s.reload(ctx, sub, true)
}

func (s *PollStateService) SubmitCandidate(ctx context.Context, text string) {
	sub := s.subscription()

	go func() {
		_, err := s.polls.AddCandidate(ctx, ports.AddCandidateInput{PollID: s.pollID, Name: text})
		if err != nil {
			s.logger.Warn("failed to add candidate", zap.String("name", text), zap.Error(err))
			s.emit(sub, domain.NewError[domain.Candidate](err.Error()))
			return
		}

		s.logger.Info("candidate added", zap.String("name", text))
		s.reload(ctx, sub, false)
	}()
}

func (s *PollStateService) CastVoteFor(ctx context.Context, candidate domain.Candidate, position int) {
	sub := s.subscription()

	go func() {
		s.checkPosition(candidate, position)

		err := s.votes.Vote(ctx, ports.VoteInput{
			PollID:      s.pollID,
			CandidateID: candidate.ID,
			UserID:      s.voterID,
		})
		if err != nil {
			s.logger.Warn("failed to cast vote", zap.Stringer("candidate_id", candidate.ID), zap.Error(err))
			s.emit(sub, domain.NewError[domain.Candidate](err.Error()))
			return
		}

		s.logger.Info("vote cast", zap.Stringer("candidate_id", candidate.ID), zap.Int("position", position))
		s.reload(ctx, sub, false)
	}()
}

// checkPosition compares the selection with the last emitted content. The
// vote targets the candidate id either way; a mismatch only means the user
// tapped a list that has since been replaced.
func (s *PollStateService) checkPosition(candidate domain.Candidate, position int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.lastItems) || s.lastItems[position].ID != candidate.ID {
		s.logger.Warn("stale selection",
			zap.Stringer("candidate_id", candidate.ID),
			zap.Int("position", position),
			zap.Int("items", len(s.lastItems)),
		)
	}
}

func (s *PollStateService) subscription() *stateSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub
}

func (s *PollStateService) watch(sub *stateSubscription) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sub.ctx.Done():
			return
		case <-ticker.C:
			s.reload(sub.ctx, sub, false)
		}
	}
}

func (s *PollStateService) reload(ctx context.Context, sub *stateSubscription, showLoading bool) {
	if sub == nil {
		return
	}

	// Loading is posted with the sequence number taken so that it always
	// precedes the content of any load issued after it.
	s.mu.Lock()
	s.issued++
	seq := s.issued
	if showLoading {
		s.post(sub, domain.NewLoading[domain.Candidate]())
	}
	s.mu.Unlock()

	items, err := s.polls.ListCandidates(ctx, s.pollID, s.voterID)
	if err != nil {
		if ctx.Err() != nil || sub.ctx.Err() != nil {
			return
		}
		s.logger.Error("failed to load candidates", zap.Error(err))
		s.emitLoaded(sub, seq, domain.NewError[domain.Candidate](err.Error()))
		return
	}

	s.emitLoaded(sub, seq, domain.NewContent(items))
}

// emitLoaded drops results of loads that started before the last applied
// one, so a slow load cannot overwrite newer content.
func (s *PollStateService) emitLoaded(sub *stateSubscription, seq uint64, state domain.CandidateState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		s.logger.Debug("dropping stale load", zap.Uint64("seq", seq), zap.Uint64("applied", s.applied))
		return
	}
	s.applied = seq
	if content, ok := state.(domain.Content[domain.Candidate]); ok {
		s.lastItems = content.Items
	}
	s.post(sub, state)
}

func (s *PollStateService) emit(sub *stateSubscription, state domain.CandidateState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.post(sub, state)
}

// post must be called with s.mu held so that delivery order matches
// emission order.
func (s *PollStateService) post(sub *stateSubscription, state domain.CandidateState) {
	if sub == nil || s.sub != sub || sub.ctx.Err() != nil {
		return
	}

	ok := s.dispatcher.Post(func() {
		if sub.ctx.Err() != nil {
			return
		}
		sub.listener(state)
	})
	if !ok {
		s.logger.Debug("dispatcher stopped, dropping poll state")
	}
}
