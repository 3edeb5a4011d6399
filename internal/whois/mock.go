package whois

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var mockRegistrars = []string{
	"GoDaddy.com, LLC",
	"NameCheap, Inc.",
	"Cloudflare, Inc.",
	"Porkbun LLC",
	"Gandi SAS",
	"Google Domains",
}

// Mock is a stand-in WHOIS client. It returns plausible randomized records
// after an artificial delay instead of talking to a registry.
//
// Results are deterministic per domain name (seeded from the name) so
// repeated lookups agree with each other, which keeps refresh loops and
// tests stable.
type Mock struct {
	// Latency is the simulated round-trip per call.
	Latency time.Duration
	// FailEvery makes every Nth Fetch fail, exercising callers' fallback
	// paths. Zero disables injected failures.
	FailEvery int

	mu    sync.Mutex
	calls int
}

// NewMock returns a mock client with a small default latency.
func NewMock() *Mock {
	return &Mock{Latency: 150 * time.Millisecond}
}

// Fetch produces a randomized-but-stable record for the domain.
func (m *Mock) Fetch(ctx context.Context, domain string) (*Record, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls++
	fail := m.FailEvery > 0 && m.calls%m.FailEvery == 0
	m.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("whois lookup failed for %s: registry timeout", domain)
	}

	rng := rand.New(rand.NewSource(seed(domain)))
	now := time.Now().UTC()
	registered := now.AddDate(-1-rng.Intn(10), -rng.Intn(12), -rng.Intn(28))
	expires := now.AddDate(0, 0, 30+rng.Intn(700))

	return &Record{
		Domain:           strings.ToLower(domain),
		Registrar:        mockRegistrars[rng.Intn(len(mockRegistrars))],
		RegistrationDate: registered,
		ExpirationDate:   expires,
		UpdatedDate:      now.AddDate(0, -rng.Intn(6), 0),
		NameServers: []string{
			fmt.Sprintf("ns1.%s", domain),
			fmt.Sprintf("ns2.%s", domain),
		},
		QueryTime: now,
	}, nil
}

// CheckAvailability reports a stable pseudo-random availability per name.
func (m *Mock) CheckAvailability(ctx context.Context, domain string) (bool, error) {
	if err := m.sleep(ctx); err != nil {
		return false, err
	}
	rng := rand.New(rand.NewSource(seed(domain)))
	// Most interesting names are taken.
	return rng.Intn(100) < 20, nil
}

func (m *Mock) sleep(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func seed(domain string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(domain)))
	return int64(h.Sum64())
}
