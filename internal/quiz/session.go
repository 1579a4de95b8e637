// Package quiz implements per-chat trivia rounds: a fixed number of
// questions sampled from a category, answered one at a time.
package quiz

import (
	"fmt"
	"math/rand/v2"

	"quizbot/internal/category"
)

// DefaultQuestionsPerRound is the round length used when config leaves it unset.
const DefaultQuestionsPerRound = 5

// Session is one round of questions for a single chat. It is not safe for
// concurrent use; Manager serialises access.
type Session struct {
	Category  string
	questions []category.Question
	idx       int
	score     int
}

// Status is a read-only snapshot of round progress.
type Status struct {
	Category    string
	QuestionIdx int // zero-based index of the current question
	Total       int
	Score       int
}

// Result describes the outcome of one submitted answer.
type Result struct {
	Correct bool
	Done    bool
	Score   int
	Total   int
	// Next is the upcoming question; meaningful only when Done is false.
	Next category.Question
}

// NewSession samples n distinct questions from the category.
func NewSession(cat category.Category, n int) (*Session, error) {
	if n <= 0 {
		n = DefaultQuestionsPerRound
	}
	if len(cat.Questions) < n {
		return nil, fmt.Errorf("%w: category %s has %d of %d", ErrInsufficientQuestions, cat.Name, len(cat.Questions), n)
	}

	// Partial Fisher-Yates over a copy: the first n slots become the sample.
	pool := make([]category.Question, len(cat.Questions))
	copy(pool, cat.Questions)
	for i := 0; i < n; i++ {
		j := i + rand.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return &Session{
		Category:  cat.Name,
		questions: pool[:n],
	}, nil
}

// Current returns the question awaiting an answer.
func (s *Session) Current() category.Question {
	return s.questions[s.idx]
}

// Submit checks the answer against the current question and advances the
// round. Matching is exact: choices are presented via buttons, so the
// submitted text is one of the stored choices verbatim.
func (s *Session) Submit(answer string) Result {
	correct := answer == s.questions[s.idx].Answer
	if correct {
		s.score++
	}
	s.idx++

	res := Result{
		Correct: correct,
		Score:   s.score,
		Total:   len(s.questions),
	}
	if s.idx >= len(s.questions) {
		res.Done = true
		return res
	}
	res.Next = s.questions[s.idx]
	return res
}

// Progress reports the session state without mutating it.
func (s *Session) Progress() Status {
	return Status{
		Category:    s.Category,
		QuestionIdx: s.idx,
		Total:       len(s.questions),
		Score:       s.score,
	}
}

// ShuffledChoices returns the question's choices in random order. A fresh
// order is produced per call so re-presenting a question reshuffles it.
func ShuffledChoices(q category.Question) []string {
	out := make([]string, len(q.Choices))
	copy(out, q.Choices)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
