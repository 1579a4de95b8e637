package bot

import (
	"errors"

	"quizbot/core/telegram/callbacks"
	tghelpers "quizbot/core/telegram/helpers"
	"quizbot/internal/category"
	"quizbot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

// SelectCategory handles the category picker button: it starts a fresh
// round (replacing any live one) and asks the first question.
func (h *Handlers) SelectCategory(c tele.Context) error {
	name := callbacks.CallbackPayload(c)

	cat, err := h.cats.Get(name)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return tghelpers.SendText(c, msgUnknownCat)
		}
		return err
	}

	first, err := h.quiz.Start(c.Chat().ID, cat)
	if err != nil {
		if errors.Is(err, quiz.ErrInsufficientQuestions) {
			return tghelpers.SendText(c, msgTooFew)
		}
		return err
	}

	return tghelpers.SendText(c, first.Text, buildAnswerKeyboard(first))
}

// Answer handles a choice button press.
func (h *Handlers) Answer(c tele.Context) error {
	choice := callbacks.CallbackPayload(c)
	return h.applyAnswer(c, choice)
}

// applyAnswer submits a choice to the chat's round, acknowledges it, and
// either asks the next question or finishes the round. Shared by the
// answer callback and /next.
func (h *Handlers) applyAnswer(c tele.Context, choice string) error {
	res, err := h.quiz.Submit(c.Chat().ID, choice)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveSession) {
			return tghelpers.EditOrSend(c, msgNotInQuiz)
		}
		return err
	}

	verdict := msgIncorrect
	if res.Correct {
		verdict = msgCorrect
	}
	if err := tghelpers.EditOrSend(c, verdict); err != nil {
		return err
	}

	if !res.Done {
		return tghelpers.SendText(c, res.Next.Text, buildAnswerKeyboard(res.Next))
	}

	if err := h.recordScore(c, res.Score); err != nil {
		return tghelpers.SendText(c, msgSaveFailed)
	}
	return tghelpers.SendText(c, renderSummary(res.Score, res.Total))
}
