package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"domainfolio/internal/portfolio/models"
)

// InMemory keeps the JSON blobs in a map, mirroring the key-value layout of
// the real backends. Round-tripping through JSON also gives callers
// deep-copy isolation for free: mutating a loaded slice never leaks back
// into the store.
type InMemory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{blobs: make(map[string][]byte)}
}

func (s *InMemory) LoadDomains(_ context.Context) ([]models.Domain, error) {
	var out []models.Domain
	if err := s.load(KeyDomains, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InMemory) SaveDomains(_ context.Context, domains []models.Domain) error {
	return s.save(KeyDomains, domains)
}

func (s *InMemory) LoadSold(_ context.Context) ([]models.SoldDomain, error) {
	var out []models.SoldDomain
	if err := s.load(KeySold, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InMemory) SaveSold(_ context.Context, sold []models.SoldDomain) error {
	return s.save(KeySold, sold)
}

func (s *InMemory) load(key string, out any) error {
	s.mu.RLock()
	blob, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *InMemory) save(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.blobs[key] = blob
	s.mu.Unlock()
	return nil
}
