package quiz

import (
	"errors"
	"fmt"
	"testing"

	"quizbot/internal/category"
)

func makeCategory(n int) category.Category {
	qs := make([]category.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, category.Question{
			Text:    fmt.Sprintf("Q%d?", i),
			Choices: []string{fmt.Sprintf("right%d", i), fmt.Sprintf("wrong%d", i)},
			Answer:  fmt.Sprintf("right%d", i),
		})
	}
	return category.Category{Name: "test", Questions: qs}
}

func TestNewSessionSamplesDistinctQuestions(t *testing.T) {
	cat := makeCategory(20)
	s, err := NewSession(cat, 5)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		q := s.Current()
		if seen[q.Text] {
			t.Fatalf("duplicate question sampled: %s", q.Text)
		}
		seen[q.Text] = true
		s.Submit(q.Answer)
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct questions, saw %d", len(seen))
	}
}

func TestNewSessionInsufficientQuestions(t *testing.T) {
	cat := makeCategory(3)
	if _, err := NewSession(cat, 5); !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
	}
}

func TestSessionScoringAndCompletion(t *testing.T) {
	cat := makeCategory(5)
	s, err := NewSession(cat, 5)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	// Answer correctly on even steps, wrong on odd.
	var last Result
	for i := 0; i < 5; i++ {
		q := s.Current()
		ans := q.Answer
		if i%2 == 1 {
			ans = "nope"
		}
		last = s.Submit(ans)
		wantDone := i == 4
		if last.Done != wantDone {
			t.Fatalf("step %d: Done=%v, want %v", i, last.Done, wantDone)
		}
	}
	if last.Score != 3 || last.Total != 5 {
		t.Fatalf("final score %d/%d, want 3/5", last.Score, last.Total)
	}
}

func TestSessionProgress(t *testing.T) {
	cat := makeCategory(10)
	s, err := NewSession(cat, 5)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.Submit(s.Current().Answer)
	s.Submit("wrong")

	st := s.Progress()
	if st.QuestionIdx != 2 || st.Total != 5 || st.Score != 1 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.Category != "test" {
		t.Fatalf("unexpected category: %s", st.Category)
	}
}

func TestShuffledChoicesPreservesSet(t *testing.T) {
	q := category.Question{
		Text:    "Q?",
		Choices: []string{"a", "b", "c", "d"},
		Answer:  "a",
	}
	got := ShuffledChoices(q)
	if len(got) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(got))
	}
	set := make(map[string]bool)
	for _, c := range got {
		set[c] = true
	}
	for _, c := range q.Choices {
		if !set[c] {
			t.Fatalf("choice %q missing after shuffle", c)
		}
	}
	// Original must stay untouched.
	if q.Choices[0] != "a" || q.Choices[3] != "d" {
		t.Fatalf("input slice mutated: %v", q.Choices)
	}
}
