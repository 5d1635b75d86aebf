package ports

import "github.com/vncsmyrnk/lunchpoll/internal/core/domain"

// Dispatcher runs functions on the single UI goroutine. Post returns false
// when the loop has stopped and fn will never run.
type Dispatcher interface {
	Post(fn func()) bool
}

type SelectionHandler func(candidate domain.Candidate, position int)

// CandidateDisplay renders the Content presentation. SetItems replaces the
// whole backing sequence and is only called on the UI goroutine. The
// selection, reject and add callbacks may be invoked from inside SetItems.
type CandidateDisplay interface {
	SetItems(items []domain.Candidate)
	OnSelect(fn SelectionHandler)
	OnReject(fn func())
	OnAdd(fn func())
}

// BusyIndicator is optionally implemented by a CandidateDisplay that can show
// progress while a state is loading.
type BusyIndicator interface {
	SetBusy(busy bool)
}

// Notifier shows a transient, non-blocking message.
type Notifier interface {
	Notify(message string)
}

// CandidatePrompt asks the user for a restaurant name and calls onSubmit
// with whatever was entered.
type CandidatePrompt interface {
	Ask(onSubmit func(text string))
}
