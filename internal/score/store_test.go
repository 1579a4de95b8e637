package score

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE highscores (
	user_id   INTEGER NOT NULL,
	user_name TEXT    NOT NULL,
	chat_id   INTEGER NOT NULL,
	score     INTEGER NOT NULL,
	PRIMARY KEY (user_id, chat_id)
);`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.db")
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewStore(db)
}

func TestRecordUpsertsSingleRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, 100, "alice", 1, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, 100, "alice2", 1, 5); err != nil {
		t.Fatalf("Record overwrite: %v", err)
	}

	top, err := s.TopForChat(ctx, 1, 10)
	if err != nil {
		t.Fatalf("TopForChat: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected one row after upsert, got %d", len(top))
	}
	if top[0].UserName != "alice2" || top[0].Score != 5 {
		t.Fatalf("unexpected row: %+v", top[0])
	}
}

func TestTopForChatOrdersAndLimits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, e := range []struct {
		name  string
		score int
	}{
		{"alice", 2}, {"bob", 5}, {"carol", 4},
	} {
		if err := s.Record(ctx, int64(100+i), e.name, 1, e.score); err != nil {
			t.Fatalf("Record %s: %v", e.name, err)
		}
	}
	// Another chat must not leak in.
	if err := s.Record(ctx, 999, "mallory", 2, 99); err != nil {
		t.Fatalf("Record other chat: %v", err)
	}

	top, err := s.TopForChat(ctx, 1, 2)
	if err != nil {
		t.Fatalf("TopForChat: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("limit ignored, got %d rows", len(top))
	}
	if top[0].UserName != "bob" || top[1].UserName != "carol" {
		t.Fatalf("unexpected ordering: %+v", top)
	}
}

func TestLifetimeTotalsSumAcrossChats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, 100, "alice", 1, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, 100, "alice_renamed", 2, 4); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, 200, "bob", 1, 5); err != nil {
		t.Fatalf("Record: %v", err)
	}

	totals, err := s.LifetimeTotals(ctx, 100, 10)
	if err != nil {
		t.Fatalf("LifetimeTotals: %v", err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected 1 row for the user, got %d", len(totals))
	}
	if totals[0].Score != 7 {
		t.Fatalf("expected sum 7 across chats, got %d", totals[0].Score)
	}
	// Name comes from the most recent write.
	if totals[0].UserName != "alice_renamed" {
		t.Fatalf("expected latest name, got %q", totals[0].UserName)
	}

	if empty, err := s.LifetimeTotals(ctx, 555, 10); err != nil || len(empty) != 0 {
		t.Fatalf("expected no rows for unknown user, got %v err=%v", empty, err)
	}
}

func TestForUserInChat(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.ForUserInChat(ctx, 1, 1); err != nil || ok {
		t.Fatalf("expected no row, got ok=%v err=%v", ok, err)
	}

	if err := s.Record(ctx, 1, "alice", 1, 4); err != nil {
		t.Fatalf("Record: %v", err)
	}
	score, ok, err := s.ForUserInChat(ctx, 1, 1)
	if err != nil || !ok || score != 4 {
		t.Fatalf("unexpected result: score=%d ok=%v err=%v", score, ok, err)
	}
}
