package bot

import (
	"fmt"
	"strings"

	"quizbot/core/telegram/keyboard"
	"quizbot/internal/category"
	"quizbot/internal/quiz"
	"quizbot/internal/score"

	tele "gopkg.in/telebot.v4"
)

const (
	cbKeyCategory = "category"
	cbKeyAnswer   = "answer"
)

const (
	msgWelcome        = "Welcome to the quiz bot! Type /cat to select a category."
	msgSelectCategory = "Select a category:"
	msgNotInQuiz      = "You are not currently in a quiz. Type /cat to select a category."
	msgCorrect        = "Correct!"
	msgIncorrect      = "Incorrect :("
	msgNoHighscores   = "There are no high scores for this chat yet."
	msgNoLeaderboard  = "You have not played any quizzes yet."
	msgUnknownCat     = "That category does not exist. Type /cat to see the list."
	msgTooFew         = "That category does not have enough questions for a round."
	msgSaveFailed     = "Quiz ended, but your score could not be saved. Please try again later."
)

func renderSummary(score, total int) string {
	return fmt.Sprintf("Quiz ended! You scored %d out of %d. Type /cat to select another category.", score, total)
}

func renderStatus(st quiz.Status) string {
	return fmt.Sprintf("You are on question %d of %d and your score is %d.", st.QuestionIdx+1, st.Total, st.Score)
}

func renderHighscores(entries []score.Entry) string {
	if len(entries) == 0 {
		return msgNoHighscores
	}
	var b strings.Builder
	b.WriteString("High scores:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s: %d\n", i+1, e.UserName, e.Score)
	}
	return b.String()
}

func renderLeaderboard(entries []score.Entry) string {
	if len(entries) == 0 {
		return msgNoLeaderboard
	}
	var b strings.Builder
	b.WriteString("Your leaderboard:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s: %d\n", i+1, e.UserName, e.Score)
	}
	return b.String()
}

func buildCategoryKeyboard(names []string) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(names))
	for _, name := range names {
		btns = append(btns, keyboard.InlineBtn{
			Text:   name,
			Unique: cbKeyCategory,
			Data:   name,
		})
	}
	return keyboard.InlineButtons(btns)
}

// buildAnswerKeyboard shuffles choices per presentation, so re-asking the
// same question produces a fresh button order.
func buildAnswerKeyboard(q category.Question) *tele.ReplyMarkup {
	choices := quiz.ShuffledChoices(q)
	btns := make([]keyboard.InlineBtn, 0, len(choices))
	for _, choice := range choices {
		btns = append(btns, keyboard.InlineBtn{
			Text:   choice,
			Unique: cbKeyAnswer,
			Data:   choice,
		})
	}
	return keyboard.InlineButtons(btns)
}
