package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

// Prompt asks for a restaurant name; the next input line answers it.
type Prompt struct {
	mu      sync.Mutex
	out     io.Writer
	pending func(text string)
}

var _ ports.CandidatePrompt = (*Prompt)(nil)

func NewPrompt(out io.Writer) *Prompt {
	return &Prompt{out: out}
}

func (p *Prompt) Ask(onSubmit func(text string)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = onSubmit
	fmt.Fprint(p.out, "restaurant name: ")
}

// Answer delivers text to the pending question. It reports false when
// nothing was asked.
func (p *Prompt) Answer(text string) bool {
	p.mu.Lock()
	fn := p.pending
	p.pending = nil
	p.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(text)
	return true
}

// Cancel drops the pending question. It reports false when nothing was asked.
func (p *Prompt) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == nil {
		return false
	}
	p.pending = nil
	fmt.Fprintln(p.out, "add cancelled")
	return true
}

func (p *Prompt) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}
