package category

// Store holds loaded categories for lookup. Categories are immutable after
// construction, so the store needs no locking.
type Store struct {
	order []string
	byKey map[string]Category
}

// NewStore indexes the given categories preserving load order.
func NewStore(cats []Category) *Store {
	s := &Store{
		order: make([]string, 0, len(cats)),
		byKey: make(map[string]Category, len(cats)),
	}
	for _, c := range cats {
		if _, dup := s.byKey[c.Name]; dup {
			continue
		}
		s.order = append(s.order, c.Name)
		s.byKey[c.Name] = c
	}
	return s
}

// List returns category names in load order.
func (s *Store) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the named category or ErrNotFound.
func (s *Store) Get(name string) (Category, error) {
	c, ok := s.byKey[name]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

// Len reports the number of categories.
func (s *Store) Len() int {
	return len(s.order)
}
