// Package bot wires the quiz services to Telegram commands and callbacks.
package bot

import (
	"errors"
	"log/slog"

	"quizbot/core/logger"
	tghelpers "quizbot/core/telegram/helpers"
	"quizbot/internal/category"
	"quizbot/internal/quiz"
	"quizbot/internal/score"

	tele "gopkg.in/telebot.v4"
)

// Handlers binds command and callback handlers to the quiz services.
type Handlers struct {
	cats       *category.Store
	quiz       *quiz.Manager
	scores     *score.Store
	boardLimit int
}

// NewHandlers builds the controller. boardLimit caps ranking listings.
func NewHandlers(cats *category.Store, mgr *quiz.Manager, scores *score.Store, boardLimit int) *Handlers {
	if boardLimit <= 0 {
		boardLimit = 10
	}
	return &Handlers{
		cats:       cats,
		quiz:       mgr,
		scores:     scores,
		boardLimit: boardLimit,
	}
}

// Start greets the user.
func (h *Handlers) Start(c tele.Context) error {
	return tghelpers.SendText(c, msgWelcome)
}

// Categories shows the category picker keyboard.
func (h *Handlers) Categories(c tele.Context) error {
	names := h.cats.List()
	return tghelpers.SendText(c, msgSelectCategory, buildCategoryKeyboard(names))
}

// Score reports round progress.
func (h *Handlers) Score(c tele.Context) error {
	st, err := h.quiz.Status(c.Chat().ID)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveSession) {
			return tghelpers.SendText(c, msgNotInQuiz)
		}
		return err
	}
	return tghelpers.SendText(c, renderStatus(st))
}

// Highscores lists the chat's best recorded rounds.
func (h *Handlers) Highscores(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	entries, err := h.scores.TopForChat(ctx, c.Chat().ID, h.boardLimit)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, renderHighscores(entries))
}

// Leaderboard lists the invoking user's lifetime totals.
func (h *Handlers) Leaderboard(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	entries, err := h.scores.LifetimeTotals(ctx, c.Sender().ID, h.boardLimit)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, renderLeaderboard(entries))
}

// End abandons the round early and records the partial score.
func (h *Handlers) End(c tele.Context) error {
	st, err := h.quiz.ForceEnd(c.Chat().ID)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveSession) {
			return tghelpers.SendText(c, msgNotInQuiz)
		}
		return err
	}
	if err := h.recordScore(c, st.Score); err != nil {
		return tghelpers.SendText(c, msgSaveFailed)
	}
	return tghelpers.SendText(c, renderSummary(st.Score, st.Total))
}

// Next skips the current question by submitting an empty choice, which
// never matches a stored answer.
func (h *Handlers) Next(c tele.Context) error {
	if !h.quiz.Active(c.Chat().ID) {
		return tghelpers.SendText(c, msgNotInQuiz)
	}
	return h.applyAnswer(c, "")
}

// recordScore persists a finished round. The session stays cleared even
// when the write fails; the caller reports the failure to the user.
func (h *Handlers) recordScore(c tele.Context, finalScore int) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	name := user.Username
	if name == "" {
		name = user.FirstName
	}
	ctx := tghelpers.BuildContext(c)
	if err := h.scores.Record(ctx, user.ID, name, c.Chat().ID, finalScore); err != nil {
		logger.Event(ctx, "service.scores", slog.LevelError, "record.user_notified",
			slog.Int64("chat_id", c.Chat().ID),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}
