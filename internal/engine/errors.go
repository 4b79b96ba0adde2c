package engine

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidState means the requested transition is not legal from the
	// session's current status.
	ErrInvalidState = errors.New("invalid session state for this operation")

	// ErrQuestionNotFound means the question index is outside the session.
	ErrQuestionNotFound = errors.New("question index out of range")

	// ErrNoAnswer means an evaluation was submitted for a question that has
	// no recorded answer yet.
	ErrNoAnswer = errors.New("question has no recorded answer")

	// ErrInvalidAnswer means the answer payload itself is inconsistent,
	// e.g. its end time precedes its start time.
	ErrInvalidAnswer = errors.New("answer end time precedes start time")
)

// SetupError carries the full list of setup violations so callers can show
// everything at once instead of fixing one field per round trip.
type SetupError struct {
	Violations []string
}

func (e *SetupError) Error() string {
	return "invalid interview setup: " + strings.Join(e.Violations, "; ")
}
