// Package category loads and serves trivia question packs. Each pack is a
// JSON file on disk; the file's base name becomes the category name users
// pick from.
package category

import "errors"

// ErrNotFound is returned when a requested category does not exist.
var ErrNotFound = errors.New("category: not found")

// Question is a single multiple-choice question. Answer must match one of
// Choices exactly.
type Question struct {
	Text    string   `json:"question"`
	Choices []string `json:"choices"`
	Answer  string   `json:"answer"`
}

// Category is a named, ordered set of questions.
type Category struct {
	Name      string
	Questions []Question
}
