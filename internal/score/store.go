// Package score persists per-chat quiz results and serves ranking queries.
package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"quizbot/core/logger"
)

// Entry is one row of a ranking listing.
type Entry struct {
	UserName string `db:"user_name"`
	Score    int    `db:"score"`
}

// Store reads and writes the highscores table.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Record upserts the user's score for a chat. A second round in the same
// chat overwrites the previous result rather than accumulating.
func (s *Store) Record(ctx context.Context, userID int64, userName string, chatID int64, score int) error {
	const q = `
		INSERT INTO highscores (user_id, user_name, chat_id, score)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, chat_id) DO UPDATE SET
			user_name = excluded.user_name,
			score = excluded.score`

	if _, err := s.db.ExecContext(ctx, q, userID, userName, chatID, score); err != nil {
		logger.Event(ctx, "service.scores", slog.LevelError, "record.failed",
			slog.Int64("user_id", userID),
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("score: record: %w", err)
	}

	logger.Event(ctx, "service.scores", slog.LevelInfo, "record.saved",
		slog.Int64("user_id", userID),
		slog.Int64("chat_id", chatID),
		slog.Int("score", score),
	)
	return nil
}

// TopForChat lists the chat's best scores, highest first.
func (s *Store) TopForChat(ctx context.Context, chatID int64, limit int) ([]Entry, error) {
	const q = `
		SELECT user_name, score
		FROM highscores
		WHERE chat_id = ?
		ORDER BY score DESC
		LIMIT ?`

	var out []Entry
	if err := s.db.SelectContext(ctx, &out, q, chatID, limit); err != nil {
		return nil, fmt.Errorf("score: top for chat: %w", err)
	}
	return out, nil
}

// LifetimeTotals sums the user's scores across all chats. The displayed
// name is taken from the user's most recently written row.
func (s *Store) LifetimeTotals(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	const q = `
		SELECT
			(SELECT h2.user_name FROM highscores h2
			 WHERE h2.user_id = h.user_id
			 ORDER BY h2.rowid DESC LIMIT 1) AS user_name,
			SUM(h.score) AS score
		FROM highscores h
		WHERE h.user_id = ?
		GROUP BY h.user_id
		ORDER BY score DESC
		LIMIT ?`

	var out []Entry
	if err := s.db.SelectContext(ctx, &out, q, userID, limit); err != nil {
		return nil, fmt.Errorf("score: lifetime totals: %w", err)
	}
	return out, nil
}

// ForUserInChat fetches the user's stored score for a chat; ok is false when
// the user has no recorded round there.
func (s *Store) ForUserInChat(ctx context.Context, userID, chatID int64) (int, bool, error) {
	const q = `SELECT score FROM highscores WHERE user_id = ? AND chat_id = ?`

	var score int
	err := s.db.GetContext(ctx, &score, q, userID, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("score: for user in chat: %w", err)
	}
	return score, true, nil
}
