package ports

import (
	"context"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
)

// StateListener receives every ViewState the provider emits, on the UI
// goroutine, in emission order.
type StateListener func(state domain.CandidateState)

// Subscription is released with Unsubscribe. Unsubscribe is idempotent and
// no listener call starts after it returns.
type Subscription interface {
	Unsubscribe()
}

// PollStateProvider owns a poll's derived state and its mutations. Mutations
// are fire-and-forget: their outcome arrives later as a new ViewState.
type PollStateProvider interface {
	Subscribe(listener StateListener) (Subscription, error)
	SubmitCandidate(ctx context.Context, text string)
	CastVoteFor(ctx context.Context, candidate domain.Candidate, position int)
}
