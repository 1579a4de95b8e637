package bot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"quizbot/internal/category"
	"quizbot/internal/quiz"
	"quizbot/internal/score"
)

const testSchema = `
CREATE TABLE highscores (
	user_id   INTEGER NOT NULL,
	user_name TEXT    NOT NULL,
	chat_id   INTEGER NOT NULL,
	score     INTEGER NOT NULL,
	PRIMARY KEY (user_id, chat_id)
);`

func testServices(t *testing.T) (*quiz.Manager, *score.Store) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return quiz.NewManager(5), score.NewStore(db)
}

func testCategory(name string, n int) category.Category {
	qs := make([]category.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, category.Question{
			Text:    fmt.Sprintf("%s Q%d?", name, i),
			Choices: []string{fmt.Sprintf("right%d", i), fmt.Sprintf("wrong%d", i)},
			Answer:  fmt.Sprintf("right%d", i),
		})
	}
	return category.Category{Name: name, Questions: qs}
}

// Full round: answer 3 of 5 correctly, record, then read the listing back.
func TestRoundCompletionRecordsScore(t *testing.T) {
	mgr, scores := testServices(t)
	ctx := context.Background()
	const chatID = 42

	q, err := mgr.Start(chatID, testCategory("geography", 8))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var res quiz.Result
	cur := q
	for i := 0; i < 5; i++ {
		ans := cur.Answer
		if i >= 3 {
			ans = "" // skipped via /next submits an empty choice
		}
		res, err = mgr.Submit(chatID, ans)
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		cur = res.Next
	}
	if !res.Done || res.Score != 3 || res.Total != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}

	if err := scores.Record(ctx, 100, "alice", chatID, res.Score); err != nil {
		t.Fatalf("Record: %v", err)
	}
	text := renderHighscores(mustTop(t, scores, chatID))
	want := "High scores:\n1. alice: 3\n"
	if text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}

// Picking a new category mid-round discards the old session progress.
func TestCategorySwitchDiscardsProgress(t *testing.T) {
	mgr, _ := testServices(t)
	const chatID = 7

	q, err := mgr.Start(chatID, testCategory("geography", 6))
	if err != nil {
		t.Fatalf("Start geography: %v", err)
	}
	if _, err := mgr.Submit(chatID, q.Answer); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := mgr.Start(chatID, testCategory("history", 6)); err != nil {
		t.Fatalf("Start history: %v", err)
	}
	st, err := mgr.Status(chatID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Category != "history" || st.QuestionIdx != 0 || st.Score != 0 {
		t.Fatalf("expected fresh history round, got %+v", st)
	}
	if renderStatus(st) != "You are on question 1 of 5 and your score is 0." {
		t.Fatalf("unexpected status text: %q", renderStatus(st))
	}
}

// Force-ending mid-round records the partial score and clears the session.
func TestForceEndRecordsPartialScore(t *testing.T) {
	mgr, scores := testServices(t)
	ctx := context.Background()
	const chatID = 9

	q, err := mgr.Start(chatID, testCategory("history", 6))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := mgr.Submit(chatID, q.Answer); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	st, err := mgr.ForceEnd(chatID)
	if err != nil {
		t.Fatalf("ForceEnd: %v", err)
	}
	if st.Score != 1 {
		t.Fatalf("expected partial score 1, got %d", st.Score)
	}

	if err := scores.Record(ctx, 200, "bob", chatID, st.Score); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := mgr.Submit(chatID, "anything"); !errors.Is(err, quiz.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func mustTop(t *testing.T, s *score.Store, chatID int64) []score.Entry {
	t.Helper()
	entries, err := s.TopForChat(context.Background(), chatID, 10)
	if err != nil {
		t.Fatalf("TopForChat: %v", err)
	}
	return entries
}
