// Package query implements the pure filter/sort composition over domain
// records. It never touches storage; callers pass fully derived records and
// get back the visible subset in the requested order.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"domainfolio/internal/portfolio/models"
)

// Filter narrows a domain list. All set fields are ANDed; zero values mean
// "no constraint". An unmatched criterion yields an empty result, never an
// error.
type Filter struct {
	// Search is a case-insensitive substring match against the name.
	Search string
	// Status matches the derived status exactly.
	Status models.Status
	// ExcludeTrash drops trashed records regardless of other criteria.
	ExcludeTrash bool
	// RegistrarAccountID matches the record's registrar account exactly.
	RegistrarAccountID uuid.UUID
	// RegistrarID matches indirectly: the record's registrar account must
	// belong to this registrar. Resolved via the AccountIDs set passed to
	// Apply (a one-level join done by the caller).
	RegistrarID uuid.UUID
	// CategoryID matches when present in the record's category list.
	CategoryID uuid.UUID
}

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort field names. SortByTLD is synthetic: the suffix after the last dot
// of the name.
const (
	SortByName       = "name"
	SortByTLD        = "tld"
	SortByStatus     = "status"
	SortByExpiration = "expiration_date"
	SortByRegistered = "registration_date"
	SortByDaysLeft   = "days_until_expiration"
	SortByPrice      = "price"
	SortByCreatedAt  = "created_at"
	SortByUpdatedAt  = "updated_at"
)

// Sort orders a domain list. Compare, when set, overrides the named field
// entirely (escape hatch for callers with custom orderings). Sorting is
// stable: ties keep their original relative order.
type Sort struct {
	Field   string
	Order   Order
	Compare func(a, b models.Domain) int
}

// Apply filters and sorts domains. accountIDs is the resolved set of
// registrar account ids for Filter.RegistrarID; pass nil when that filter is
// unset. The input slice is not modified.
func Apply(domains []models.Domain, f Filter, accountIDs []uuid.UUID, s Sort) []models.Domain {
	out := ApplyFilter(domains, f, accountIDs)
	ApplySort(out, s)
	return out
}

// ApplyFilter returns the subset of domains matching f.
func ApplyFilter(domains []models.Domain, f Filter, accountIDs []uuid.UUID) []models.Domain {
	accounts := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		accounts[id] = struct{}{}
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Domain, 0, len(domains))
	for _, d := range domains {
		if f.ExcludeTrash && d.Status == models.StatusTrash {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.RegistrarAccountID != uuid.Nil && d.RegistrarAccountID != f.RegistrarAccountID {
			continue
		}
		if f.RegistrarID != uuid.Nil {
			if _, ok := accounts[d.RegistrarAccountID]; !ok {
				continue
			}
		}
		if f.CategoryID != uuid.Nil && !containsID(d.CategoryIDs, f.CategoryID) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ApplySort orders domains in place per s. An empty field with no custom
// comparator leaves the original order untouched.
func ApplySort(domains []models.Domain, s Sort) {
	cmp := s.Compare
	if cmp == nil {
		cmp = fieldComparator(s.Field)
	}
	if cmp == nil {
		return
	}
	sort.SliceStable(domains, func(i, j int) bool {
		c := cmp(domains[i], domains[j])
		if s.Order == Desc {
			return c > 0
		}
		return c < 0
	})
}

func fieldComparator(field string) func(a, b models.Domain) int {
	switch field {
	case SortByName:
		return func(a, b models.Domain) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByTLD:
		return func(a, b models.Domain) int {
			return strings.Compare(strings.ToLower(a.TLD()), strings.ToLower(b.TLD()))
		}
	case SortByStatus:
		return func(a, b models.Domain) int {
			return strings.Compare(string(a.Status), string(b.Status))
		}
	case SortByExpiration:
		return func(a, b models.Domain) int { return compareTime(a.ExpirationDate, b.ExpirationDate) }
	case SortByRegistered:
		return func(a, b models.Domain) int { return compareTime(a.RegistrationDate, b.RegistrationDate) }
	case SortByDaysLeft:
		return func(a, b models.Domain) int { return a.DaysUntilExpiration - b.DaysUntilExpiration }
	case SortByPrice:
		return func(a, b models.Domain) int { return compareFloat(a.Price, b.Price) }
	case SortByCreatedAt:
		return func(a, b models.Domain) int { return compareTime(a.CreatedAt, b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b models.Domain) int { return compareTime(a.UpdatedAt, b.UpdatedAt) }
	}
	return nil
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
