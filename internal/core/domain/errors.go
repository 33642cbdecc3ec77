package domain

import "errors"

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrInvalidPollID    = errors.New("invalid poll id")
	ErrInvalidOption    = errors.New("invalid option for this poll")
	ErrInvalidInput     = errors.New("invalid input")
	ErrPollEnded        = errors.New("poll is closed for voting")
	ErrAlreadyVoted     = errors.New("a vote was already cast for this poll")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTallyMismatch    = errors.New("option tallies diverge from recorded votes")
	ErrUnavailable      = errors.New("store unavailable")
)
