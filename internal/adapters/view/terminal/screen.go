package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/core/domain"
	"github.com/vncsmyrnk/lunchpoll/internal/core/ports"
)

const helpText = `commands:
  N | vote N     vote for row N
  add [name]     propose a restaurant
  reject         pass on the list
  refresh        reload the poll
  quit           leave the poll

after add, the next line is taken as the name; cancel or quit aborts it`

// Screen turns input lines into taps on the list view. Every line is handled
// on the UI goroutine.
type Screen struct {
	out      io.Writer
	loop     ports.Dispatcher
	list     *CandidateListView
	prompt   *Prompt
	notifier ports.Notifier
	logger   *zap.Logger

	// OnRefresh and OnQuit are optional.
	OnRefresh func()
	OnQuit    func()
}

func NewScreen(out io.Writer, loop ports.Dispatcher, list *CandidateListView, prompt *Prompt, notifier ports.Notifier, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Screen{
		out:      out,
		loop:     loop,
		list:     list,
		prompt:   prompt,
		notifier: notifier,
		logger:   logger,
	}
}

// ReadInput posts each line of in onto the UI loop until in is exhausted or
// ctx is done. End of input quits the screen.
func (s *Screen) ReadInput(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if !s.loop.Post(func() { s.HandleLine(line) }) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	s.loop.Post(s.quit)
	return nil
}

func (s *Screen) HandleLine(line string) {
	if s.prompt.Pending() && isCancel(line) {
		s.prompt.Cancel()
		return
	}
	if s.prompt.Answer(line) {
		return
	}

	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "quit", "q", "exit":
		s.quit()
	case "add":
		s.list.Add()
		if arg != "" {
			s.prompt.Answer(arg)
		}
	case "reject":
		s.list.Reject()
	case "refresh":
		if s.OnRefresh != nil {
			s.OnRefresh()
		}
	case "vote":
		s.vote(arg)
	default:
		s.vote(cmd)
	}
}

// isCancel reports whether line aborts a pending restaurant name instead of
// answering it.
func isCancel(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "cancel", "quit", "q", "exit":
		return true
	}
	return false
}

func (s *Screen) vote(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("unknown command %q, type help", arg))
		return
	}

	if err := s.list.Select(n - 1); err != nil {
		if errors.Is(err, domain.ErrInvalidPosition) {
			s.notifier.Notify(fmt.Sprintf("no restaurant at row %d", n))
			return
		}
		s.logger.Error("selection failed", zap.Int("row", n), zap.Error(err))
	}
}

func (s *Screen) quit() {
	if s.OnQuit != nil {
		s.OnQuit()
	}
}
