package registrar

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"domainfolio/pkg/sentinel"
)

// InMemoryStore keeps registrars and accounts in memory. Reference data is
// small and read-mostly, so clarity wins over performance.
type InMemoryStore struct {
	mu         sync.RWMutex
	registrars map[uuid.UUID]Registrar
	accounts   map[uuid.UUID]Account
	order      []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		registrars: make(map[uuid.UUID]Registrar),
		accounts:   make(map[uuid.UUID]Account),
	}
}

// Seed replaces the store contents. Used at startup and in tests.
func (s *InMemoryStore) Seed(registrars []Registrar, accounts []Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrars = make(map[uuid.UUID]Registrar, len(registrars))
	s.order = s.order[:0]
	for _, r := range registrars {
		s.registrars[r.ID] = r
		s.order = append(s.order, r.ID)
	}
	s.accounts = make(map[uuid.UUID]Account, len(accounts))
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
}

func (s *InMemoryStore) List(_ context.Context) ([]Registrar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Registrar, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registrars[id])
	}
	return out, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (Registrar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.registrars[id]; ok {
		return r, nil
	}
	return Registrar{}, sentinel.ErrNotFound
}

// AccountsByRegistrar returns all accounts held at the given registrar.
func (s *InMemoryStore) AccountsByRegistrar(_ context.Context, registrarID uuid.UUID) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Account
	for _, a := range s.accounts {
		if a.RegistrarID == registrarID {
			out = append(out, a)
		}
	}
	return out, nil
}

// AccountIDs resolves a registrar to the set of its account ids, the
// one-level join behind registrar-level domain filters.
func (s *InMemoryStore) AccountIDs(ctx context.Context, registrarID uuid.UUID) ([]uuid.UUID, error) {
	accounts, err := s.AccountsByRegistrar(ctx, registrarID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids, nil
}
