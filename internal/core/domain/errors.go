package domain

import "errors"

var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrInvalidPollID      = errors.New("invalid poll id")
	ErrTitleRequired      = errors.New("title is required")
	ErrMissingPollID      = errors.New("poll id is required")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrInvalidCandidate   = errors.New("invalid candidate for this poll")
	ErrEmptyCandidateName = errors.New("candidate name is required")
	ErrInvalidPosition    = errors.New("no candidate at this position")
	ErrAlreadyVoted       = errors.New("user has already voted for this candidate")
	ErrUserNotVoted       = errors.New("user did not vote on this poll")
	ErrMissingVoter       = errors.New("voter is required")
	ErrAlreadySubscribed  = errors.New("poll state already has a subscriber")
	ErrAlreadyAttached    = errors.New("reconciler is already attached")
	ErrInternal           = errors.New("internal server error")
)
