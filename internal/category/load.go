package category

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quizbot/core/logger"
)

type packFile struct {
	Questions []Question `json:"questions"`
}

// Load reads every *.json pack under dir and validates each question.
// Any unreadable or invalid pack fails the whole load: a bot that starts
// with a broken category would only surface the problem mid-round.
func Load(dir string) ([]Category, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("category: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	cats := make([]Category, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		cat, err := loadPack(path)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}

	preview, _ := logger.SummarizeStrings(names, 5)
	logger.Event(logger.Background(), "category", slog.LevelInfo, "packs.loaded",
		slog.String("path", dir),
		slog.Int("files_total", len(cats)),
		slog.String("files_preview", preview),
	)
	return cats, nil
}

func loadPack(path string) (Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Category{}, fmt.Errorf("category: read %s: %w", path, err)
	}

	var pack packFile
	if err := json.Unmarshal(data, &pack); err != nil {
		return Category{}, fmt.Errorf("category: parse %s: %w", path, err)
	}
	if len(pack.Questions) == 0 {
		return Category{}, fmt.Errorf("category: %s has no questions", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), ".json")
	for i, q := range pack.Questions {
		if err := validateQuestion(q); err != nil {
			return Category{}, fmt.Errorf("category: %s question %d: %w", path, i, err)
		}
	}

	return Category{Name: name, Questions: pack.Questions}, nil
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("needs at least 2 choices, got %d", len(q.Choices))
	}
	for _, c := range q.Choices {
		if c == q.Answer {
			return nil
		}
	}
	return fmt.Errorf("answer %q not among choices", q.Answer)
}
