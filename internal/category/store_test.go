package category

import (
	"errors"
	"testing"
)

func sampleCats() []Category {
	q := []Question{
		{Text: "Q1?", Choices: []string{"a", "b"}, Answer: "a"},
		{Text: "Q2?", Choices: []string{"a", "b"}, Answer: "b"},
	}
	return []Category{
		{Name: "geography", Questions: q},
		{Name: "history", Questions: q},
	}
}

func TestStoreListPreservesOrder(t *testing.T) {
	s := NewStore(sampleCats())
	got := s.List()
	if len(got) != 2 || got[0] != "geography" || got[1] != "history" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestStoreGet(t *testing.T) {
	s := NewStore(sampleCats())

	c, err := s.Get("history")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Name != "history" || len(c.Questions) != 2 {
		t.Fatalf("unexpected category: %+v", c)
	}

	if _, err := s.Get("sports"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSkipsDuplicateNames(t *testing.T) {
	cats := sampleCats()
	cats = append(cats, Category{Name: "geography"})
	s := NewStore(cats)
	if s.Len() != 2 {
		t.Fatalf("expected duplicates skipped, got %d entries", s.Len())
	}
}
