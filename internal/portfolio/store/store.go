// Package store persists the portfolio as whole-list JSON blobs, one key
// for active domains and one for sold records. Every mutation is a
// read-modify-write of the full list; the service layer owns that cycle and
// accepts last-writer-wins for the single-writer deployments this serves.
package store

import (
	"context"

	"domainfolio/internal/portfolio/models"
)

// Storage keys. Dates inside the blobs are RFC 3339 strings.
const (
	KeyDomains = "portfolio:domains"
	KeySold    = "portfolio:domains:sold"
)

// Repository loads and saves the two portfolio lists. A missing key reads
// as an empty list, not an error — a fresh portfolio has no blobs yet.
type Repository interface {
	LoadDomains(ctx context.Context) ([]models.Domain, error)
	SaveDomains(ctx context.Context, domains []models.Domain) error
	LoadSold(ctx context.Context) ([]models.SoldDomain, error)
	SaveSold(ctx context.Context, sold []models.SoldDomain) error
}
