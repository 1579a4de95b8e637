package quiz

import "errors"

var (
	// ErrNoActiveSession is returned when a chat has no round in progress.
	ErrNoActiveSession = errors.New("quiz: no active session")
	// ErrInsufficientQuestions is returned when a category cannot fill a round.
	ErrInsufficientQuestions = errors.New("quiz: not enough questions")
)
