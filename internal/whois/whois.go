// Package whois defines the WHOIS collaborator used to backfill and refresh
// registration metadata. The service talks to the Client interface only;
// wiring decides between the randomized mock and the cached variant.
package whois

import (
	"context"
	"time"
)

// Record is the normalized result of a WHOIS lookup.
type Record struct {
	Domain           string    `json:"domain"`
	Registrar        string    `json:"registrar"`
	RegistrationDate time.Time `json:"registration_date"`
	ExpirationDate   time.Time `json:"expiration_date"`
	UpdatedDate      time.Time `json:"updated_date"`
	NameServers      []string  `json:"name_servers,omitempty"`
	QueryTime        time.Time `json:"query_time"`
}

// Client is a single-shot WHOIS collaborator. Fetch may fail; callers decide
// whether to propagate or degrade with defaults.
type Client interface {
	Fetch(ctx context.Context, domain string) (*Record, error)
	CheckAvailability(ctx context.Context, domain string) (bool, error)
}
