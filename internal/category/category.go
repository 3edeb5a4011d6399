// Package category holds the category reference data used to tag domains.
package category

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"domainfolio/pkg/sentinel"
)

// Category tags domains for grouping and filtering.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color,omitempty"`
}

// InMemoryStore keeps categories in memory, seeded at startup.
type InMemoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]Category
	order      []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{categories: make(map[uuid.UUID]Category)}
}

// Seed replaces the store contents.
func (s *InMemoryStore) Seed(categories []Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = make(map[uuid.UUID]Category, len(categories))
	s.order = s.order[:0]
	for _, c := range categories {
		s.categories[c.ID] = c
		s.order = append(s.order, c.ID)
	}
}

func (s *InMemoryStore) List(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.categories[id])
	}
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return Category{}, sentinel.ErrNotFound
}

// DefaultSeed returns the built-in categories.
func DefaultSeed() []Category {
	return []Category{
		{ID: uuid.New(), Name: "Brandable", Color: "#6366f1"},
		{ID: uuid.New(), Name: "Keyword", Color: "#10b981"},
		{ID: uuid.New(), Name: "Geo", Color: "#f59e0b"},
		{ID: uuid.New(), Name: "Numeric", Color: "#ef4444"},
		{ID: uuid.New(), Name: "Personal", Color: "#8b5cf6"},
	}
}
