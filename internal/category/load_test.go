package category

import (
	"os"
	"path/filepath"
	"testing"
)

func writePack(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}
}

const validPack = `{
  "questions": [
    {"question": "Capital of France?", "choices": ["Paris", "Lyon"], "answer": "Paris"},
    {"question": "Capital of Spain?", "choices": ["Madrid", "Seville"], "answer": "Madrid"}
  ]
}`

func TestLoadReadsSortedPacks(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "history.json", validPack)
	writePack(t, dir, "geography.json", validPack)
	writePack(t, dir, "notes.txt", "ignored")

	cats, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Name != "geography" || cats[1].Name != "history" {
		t.Fatalf("unexpected order: %s, %s", cats[0].Name, cats[1].Name)
	}
	if len(cats[0].Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(cats[0].Questions))
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "broken.json", "{not json")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadRejectsEmptyPack(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "empty.json", `{"questions": []}`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for empty pack")
	}
}

func TestLoadRejectsAnswerNotInChoices(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "bad.json", `{
  "questions": [
    {"question": "Q?", "choices": ["a", "b"], "answer": "c"}
  ]
}`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for answer outside choices")
	}
}

func TestLoadRejectsTooFewChoices(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "bad.json", `{
  "questions": [
    {"question": "Q?", "choices": ["only"], "answer": "only"}
  ]
}`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for single-choice question")
	}
}

func TestLoadRejectsEmptyQuestionText(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "bad.json", `{
  "questions": [
    {"question": "  ", "choices": ["a", "b"], "answer": "a"}
  ]
}`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for blank question text")
	}
}
