package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

// PollStateReconciler renders a provider's ViewState stream on a candidate
// display and forwards the user's intents back to the provider.
//
// Exactly one presentation is shown at a time: Content replaces the list,
// Error raises a notification and leaves the list alone, Loading changes
// nothing visible.
type PollStateReconciler struct {
	provider ports.PollStateProvider
	display  ports.CandidateDisplay
	notifier ports.Notifier
	prompt   ports.CandidatePrompt
	logger   *zap.Logger

	// att is read without mu by the intent path so that a display may call
	// back into the reconciler while it renders.
	att atomic.Pointer[Attachment]

	mu      sync.Mutex
	used    bool
	current domain.CandidateState
}

func NewPollStateReconciler(provider ports.PollStateProvider, display ports.CandidateDisplay, notifier ports.Notifier, prompt ports.CandidatePrompt, logger *zap.Logger) *PollStateReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PollStateReconciler{
		provider: provider,
		display:  display,
		notifier: notifier,
		prompt:   prompt,
		logger:   logger,
	}
}

// Attachment is the live subscription of a reconciler. Detach releases it.
type Attachment struct {
	r      *PollStateReconciler
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	// guarded by r.mu
	sub      ports.Subscription
	stop     func() bool
	detached bool
}

// Attach subscribes to the provider for the lifetime of the screen. It can be
// called once per reconciler. The attachment is released by Detach or when
// ctx is done, whichever comes first; callers should still defer Detach.
func (r *PollStateReconciler) Attach(ctx context.Context) (*Attachment, error) {
	r.mu.Lock()
	if r.used {
		r.mu.Unlock()
		return nil, domain.ErrAlreadyAttached
	}
	r.used = true

	attCtx, cancel := context.WithCancel(ctx)
	att := &Attachment{r: r, ctx: attCtx, cancel: cancel}
	r.att.Store(att)
	r.mu.Unlock()

	r.display.OnSelect(r.OnSelection)
	r.display.OnReject(r.OnRejectSelection)
	r.display.OnAdd(r.onAddRequested)

	sub, err := r.provider.Subscribe(r.handle)
	if err != nil {
		r.mu.Lock()
		att.detached = true
		r.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("failed to subscribe to poll state: %w", err)
	}

	r.mu.Lock()
	att.sub = sub
	detached := att.detached
	if !detached {
		att.stop = context.AfterFunc(ctx, att.Detach)
	}
	r.mu.Unlock()

	if detached {
		sub.Unsubscribe()
	}

	r.logger.Debug("attached to poll state")
	return att, nil
}

// Detach unsubscribes from the provider. It is idempotent; once it returns
// no further state reaches the display.
func (a *Attachment) Detach() {
	a.once.Do(func() {
		r := a.r

		r.mu.Lock()
		a.detached = true
		sub, stop := a.sub, a.stop
		r.mu.Unlock()

		if stop != nil {
			stop()
		}
		a.cancel()
		if sub != nil {
			sub.Unsubscribe()
		}

		r.logger.Debug("detached from poll state")
	})
}

// Current returns the last state handled, nil before the first one.
func (r *PollStateReconciler) Current() domain.CandidateState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// handle runs on the UI goroutine for every emitted state.
func (r *PollStateReconciler) handle(state domain.CandidateState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if att := r.att.Load(); att == nil || att.detached {
		r.logger.Debug("dropping poll state after detach")
		return
	}
	if state == nil {
		return
	}

	r.current = state
	state.Accept(stateRenderer{r: r})
}

type stateRenderer struct {
	r *PollStateReconciler
}

var _ domain.ViewStateVisitor[domain.Candidate] = stateRenderer{}

func (v stateRenderer) VisitLoading() {
	v.r.logger.Debug("poll state loading")
	v.r.setBusy(true)
}

func (v stateRenderer) VisitContent(items []domain.Candidate) {
	v.r.setBusy(false)
	v.r.display.SetItems(items)
}

func (v stateRenderer) VisitError(detail string) {
	v.r.setBusy(false)
	v.r.logger.Warn("poll state error", zap.String("detail", detail))
	v.r.notifier.Notify("Error " + detail)
}

func (r *PollStateReconciler) setBusy(busy bool) {
	if b, ok := r.display.(ports.BusyIndicator); ok {
		b.SetBusy(busy)
	}
}

// OnCandidateAdded forwards text as entered; validation is the provider's.
func (r *PollStateReconciler) OnCandidateAdded(text string) {
	r.provider.SubmitCandidate(r.intentContext(), text)
}

func (r *PollStateReconciler) OnSelection(candidate domain.Candidate, position int) {
	r.provider.CastVoteFor(r.intentContext(), candidate, position)
}

// OnRejectSelection is the negative-vote affordance. It does nothing yet.
func (r *PollStateReconciler) OnRejectSelection() {
	r.logger.Debug("reject selection ignored")
}

func (r *PollStateReconciler) onAddRequested() {
	if r.prompt == nil {
		r.logger.Warn("no prompt to add a candidate")
		return
	}
	r.prompt.Ask(r.OnCandidateAdded)
}

func (r *PollStateReconciler) intentContext() context.Context {
	if att := r.att.Load(); att != nil {
		return att.ctx
	}
	return context.Background()
}
