package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

// Snackbar prints transient notifications on their own line.
type Snackbar struct {
	mu  sync.Mutex
	out io.Writer
}

var _ ports.Notifier = (*Snackbar)(nil)

func NewSnackbar(out io.Writer) *Snackbar {
	return &Snackbar{out: out}
}

func (s *Snackbar) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "! %s\n", message)
}
