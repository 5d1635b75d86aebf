package domain

// ViewState is the presentation state of a poll screen. It is one of
// Loading, Content or Error; the set is closed to this package.
//
// Handlers dispatch through Accept so that every variant must be handled:
// a new variant adds a method to ViewStateVisitor and every visitor stops
// compiling until it handles it.
type ViewState[T any] interface {
	Accept(v ViewStateVisitor[T])
	viewState()
}

// ViewStateVisitor has one method per ViewState variant.
type ViewStateVisitor[T any] interface {
	VisitLoading()
	VisitContent(items []T)
	VisitError(detail string)
}

// Loading means an emission is in progress.
type Loading[T any] struct{}

// Content carries the ordered items to display. Items may be empty.
type Content[T any] struct {
	Items []T
}

// Error carries the provider's failure description.
type Error[T any] struct {
	Detail string
}

func NewLoading[T any]() ViewState[T] {
	return Loading[T]{}
}

// NewContent copies items so the returned state cannot be mutated through
// the caller's slice.
func NewContent[T any](items []T) ViewState[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return Content[T]{Items: cp}
}

func NewError[T any](detail string) ViewState[T] {
	return Error[T]{Detail: detail}
}

func (Loading[T]) Accept(v ViewStateVisitor[T]) {
	v.VisitLoading()
}

func (s Content[T]) Accept(v ViewStateVisitor[T]) {
	items := s.Items
	if items == nil {
		items = []T{}
	}
	v.VisitContent(items)
}

func (s Error[T]) Accept(v ViewStateVisitor[T]) {
	v.VisitError(s.Detail)
}

func (Loading[T]) viewState() {}
func (Content[T]) viewState() {}
func (Error[T]) viewState()   {}

// CandidateState is the ViewState emitted for a poll's candidate list.
type CandidateState = ViewState[Candidate]
