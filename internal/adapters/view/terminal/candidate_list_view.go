// Package terminal renders a poll screen as text and reads commands from
// a line-oriented input.
package terminal

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

// generation is one SetItems call. It is never mutated after being stored.
type generation struct {
	seq   uint64
	items []domain.Candidate
}

// CandidateListView renders the candidate list and reports row selections.
// The backing sequence is replaced wholesale by SetItems; selections read a
// single generation so the reported (candidate, position) pair is always
// consistent.
type CandidateListView struct {
	out   io.Writer
	title string

	current atomic.Pointer[generation]
	busy    atomic.Bool

	mu       sync.Mutex
	onSelect ports.SelectionHandler
	onReject func()
	onAdd    func()
}

var (
	_ ports.CandidateDisplay = (*CandidateListView)(nil)
	_ ports.BusyIndicator    = (*CandidateListView)(nil)
)

func NewCandidateListView(out io.Writer, title string) *CandidateListView {
	v := &CandidateListView{out: out, title: title}
	v.current.Store(&generation{})
	return v
}

// SetItems replaces the list and re-renders it. Only the UI goroutine calls
// it.
func (v *CandidateListView) SetItems(items []domain.Candidate) {
	cp := make([]domain.Candidate, len(items))
	copy(cp, items)

	g := &generation{seq: v.current.Load().seq + 1, items: cp}
	v.current.Store(g)
	v.render(g)
}

func (v *CandidateListView) Items() []domain.Candidate {
	g := v.current.Load()
	cp := make([]domain.Candidate, len(g.items))
	copy(cp, g.items)
	return cp
}

// Generation counts SetItems calls.
func (v *CandidateListView) Generation() uint64 {
	return v.current.Load().seq
}

// SelectionAt captures the candidate at row together with the generation it
// was read from.
func (v *CandidateListView) SelectionAt(row int) (domain.Selection, uint64, error) {
	g := v.current.Load()
	if row < 0 || row >= len(g.items) {
		return domain.Selection{}, g.seq, domain.ErrInvalidPosition
	}
	return domain.Selection{Candidate: g.items[row], Position: row}, g.seq, nil
}

// Select reports a tap on row to the selection callback.
func (v *CandidateListView) Select(row int) error {
	sel, _, err := v.SelectionAt(row)
	if err != nil {
		return err
	}

	v.mu.Lock()
	fn := v.onSelect
	v.mu.Unlock()

	if fn != nil {
		fn(sel.Candidate, sel.Position)
	}
	return nil
}

func (v *CandidateListView) Reject() {
	v.mu.Lock()
	fn := v.onReject
	v.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Add is the persistent add-restaurant control. It works whatever the list
// currently shows.
func (v *CandidateListView) Add() {
	v.mu.Lock()
	fn := v.onAdd
	v.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (v *CandidateListView) OnSelect(fn ports.SelectionHandler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onSelect = fn
}

func (v *CandidateListView) OnReject(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onReject = fn
}

func (v *CandidateListView) OnAdd(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onAdd = fn
}

func (v *CandidateListView) SetBusy(busy bool) {
	if v.busy.Swap(busy) == busy || !busy {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, "loading...")
}

func (v *CandidateListView) Busy() bool {
	return v.busy.Load()
}

func (v *CandidateListView) render(g *generation) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "== %s ==\n", v.title)
	if len(g.items) == 0 {
		fmt.Fprintln(v.out, "(no restaurants yet)")
	}
	for i, c := range g.items {
		fmt.Fprintf(v.out, "%2d. %s (%s)", i+1, c.Label(), votes(c.VoteCount))
		if c.Voted {
			fmt.Fprint(v.out, " *")
		}
		fmt.Fprintln(v.out)
	}
	fmt.Fprintln(v.out, "[add] propose a restaurant  [N] vote for row N  [reject] pass  [quit]")
}

func votes(n int64) string {
	if n == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", n)
}
