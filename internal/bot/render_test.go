package bot

import (
	"strings"
	"testing"

	"quizbot/internal/category"
	"quizbot/internal/quiz"
	"quizbot/internal/score"
)

func TestRenderStatusIsOneBased(t *testing.T) {
	got := renderStatus(quiz.Status{QuestionIdx: 2, Total: 5, Score: 1})
	want := "You are on question 3 of 5 and your score is 1."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderSummary(t *testing.T) {
	got := renderSummary(3, 5)
	want := "Quiz ended! You scored 3 out of 5. Type /cat to select another category."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderHighscores(t *testing.T) {
	if got := renderHighscores(nil); got != msgNoHighscores {
		t.Fatalf("empty listing: got %q", got)
	}

	got := renderHighscores([]score.Entry{
		{UserName: "bob", Score: 5},
		{UserName: "alice", Score: 2},
	})
	want := "High scores:\n1. bob: 5\n2. alice: 2\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLeaderboard(t *testing.T) {
	if got := renderLeaderboard(nil); got != msgNoLeaderboard {
		t.Fatalf("empty listing: got %q", got)
	}

	got := renderLeaderboard([]score.Entry{{UserName: "alice", Score: 7}})
	if !strings.HasPrefix(got, "Your leaderboard:\n1. alice: 7") {
		t.Fatalf("got %q", got)
	}
}

func TestBuildCategoryKeyboardOneButtonPerRow(t *testing.T) {
	mk := buildCategoryKeyboard([]string{"geography", "history"})
	if len(mk.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(mk.InlineKeyboard))
	}
	for i, name := range []string{"geography", "history"} {
		row := mk.InlineKeyboard[i]
		if len(row) != 1 || row[0].Text != name {
			t.Fatalf("row %d: %+v", i, row)
		}
		if !strings.Contains(row[0].Data, name) {
			t.Fatalf("row %d data %q missing category name", i, row[0].Data)
		}
	}
}

func TestBuildAnswerKeyboardCoversChoices(t *testing.T) {
	q := category.Question{
		Text:    "Q?",
		Choices: []string{"a", "b", "c"},
		Answer:  "a",
	}
	mk := buildAnswerKeyboard(q)
	if len(mk.InlineKeyboard) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(mk.InlineKeyboard))
	}
	seen := make(map[string]bool)
	for _, row := range mk.InlineKeyboard {
		seen[row[0].Text] = true
	}
	for _, c := range q.Choices {
		if !seen[c] {
			t.Fatalf("choice %q missing from keyboard", c)
		}
	}
}
