package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainfolio/internal/portfolio/models"
)

var now = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func newDomain(t *testing.T, name string, daysLeft int) models.Domain {
	t.Helper()
	d, err := models.NewDomain(uuid.New(), name, now.AddDate(-1, 0, 0), now.AddDate(0, 0, daysLeft), now)
	require.NoError(t, err)
	return *d
}

func names(domains []models.Domain) []string {
	out := make([]string, len(domains))
	for i, d := range domains {
		out[i] = d.Name
	}
	return out
}

func TestFilterSearch(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "example.com", 100),
		newDomain(t, "myexample.net", 100),
		newDomain(t, "other.org", 100),
	}

	got := ApplyFilter(domains, Filter{Search: "EXAMPLE"}, nil)
	assert.Equal(t, []string{"example.com", "myexample.net"}, names(got))

	got = ApplyFilter(domains, Filter{Search: "nomatch"}, nil)
	assert.Empty(t, got, "unmatched criteria yield an empty set, not an error")
}

func TestFilterStatus(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "live.com", 100),
		newDomain(t, "soon.com", 10),
		newDomain(t, "gone.com", -5),
	}

	got := ApplyFilter(domains, Filter{Status: models.StatusExpired}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "gone.com", got[0].Name)
}

func TestFilterExcludeTrash(t *testing.T) {
	trashed := newDomain(t, "trashed.com", 100)
	trashed.ApplyTrash(now)
	domains := []models.Domain{newDomain(t, "kept.com", 100), trashed}

	got := ApplyFilter(domains, Filter{ExcludeTrash: true}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "kept.com", got[0].Name)

	// ExcludeTrash wins over any other matching filter.
	got = ApplyFilter(domains, Filter{ExcludeTrash: true, Search: "trashed"}, nil)
	assert.Empty(t, got)
}

func TestFilterRegistrarAccount(t *testing.T) {
	account := uuid.New()
	d1 := newDomain(t, "mine.com", 100)
	d1.RegistrarAccountID = account
	d2 := newDomain(t, "other.com", 100)
	d2.RegistrarAccountID = uuid.New()

	got := ApplyFilter([]models.Domain{d1, d2}, Filter{RegistrarAccountID: account}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "mine.com", got[0].Name)
}

func TestFilterRegistrarJoin(t *testing.T) {
	accountA, accountB := uuid.New(), uuid.New()
	d1 := newDomain(t, "a.com", 100)
	d1.RegistrarAccountID = accountA
	d2 := newDomain(t, "b.com", 100)
	d2.RegistrarAccountID = accountB
	d3 := newDomain(t, "c.com", 100) // no account at all

	registrarID := uuid.New()
	got := ApplyFilter([]models.Domain{d1, d2, d3},
		Filter{RegistrarID: registrarID},
		[]uuid.UUID{accountA, accountB})
	assert.Equal(t, []string{"a.com", "b.com"}, names(got))

	got = ApplyFilter([]models.Domain{d1, d2, d3}, Filter{RegistrarID: registrarID}, nil)
	assert.Empty(t, got, "registrar with no accounts matches nothing")
}

func TestFilterCategory(t *testing.T) {
	cat := uuid.New()
	d1 := newDomain(t, "tagged.com", 100)
	d1.CategoryIDs = []uuid.UUID{uuid.New(), cat}
	d2 := newDomain(t, "untagged.com", 100)

	got := ApplyFilter([]models.Domain{d1, d2}, Filter{CategoryID: cat}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "tagged.com", got[0].Name)
}

func TestFiltersAreANDed(t *testing.T) {
	d1 := newDomain(t, "example.com", 10)
	d2 := newDomain(t, "example.net", 100)

	got := ApplyFilter([]models.Domain{d1, d2},
		Filter{Search: "example", Status: models.StatusExpiring}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "example.com", got[0].Name)
}

func TestSortByNameReverses(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "charlie.com", 100),
		newDomain(t, "alpha.com", 100),
		newDomain(t, "bravo.com", 100),
	}

	asc := Apply(domains, Filter{}, nil, Sort{Field: SortByName, Order: Asc})
	assert.Equal(t, []string{"alpha.com", "bravo.com", "charlie.com"}, names(asc))

	desc := Apply(domains, Filter{}, nil, Sort{Field: SortByName, Order: Desc})
	assert.Equal(t, []string{"charlie.com", "bravo.com", "alpha.com"}, names(desc))
}

func TestSortByTLD(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "one.org", 100),
		newDomain(t, "two.com", 100),
		newDomain(t, "three.io", 100),
	}

	got := Apply(domains, Filter{}, nil, Sort{Field: SortByTLD, Order: Asc})
	assert.Equal(t, []string{"two.com", "three.io", "one.org"}, names(got))
}

func TestSortByDaysLeft(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "far.com", 300),
		newDomain(t, "near.com", 3),
		newDomain(t, "past.com", -10),
	}

	got := Apply(domains, Filter{}, nil, Sort{Field: SortByDaysLeft, Order: Asc})
	assert.Equal(t, []string{"past.com", "near.com", "far.com"}, names(got))
}

func TestSortIsStable(t *testing.T) {
	// All four share a TLD; ties must keep original order.
	domains := []models.Domain{
		newDomain(t, "d.com", 100),
		newDomain(t, "c.com", 100),
		newDomain(t, "b.com", 100),
		newDomain(t, "a.org", 100),
	}

	got := Apply(domains, Filter{}, nil, Sort{Field: SortByTLD, Order: Asc})
	assert.Equal(t, []string{"d.com", "c.com", "b.com", "a.org"}, names(got))
}

func TestSortCustomComparator(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "aaa.com", 100),
		newDomain(t, "z.com", 100),
		newDomain(t, "bb.com", 100),
	}

	byLength := func(a, b models.Domain) int { return len(a.Name) - len(b.Name) }
	got := Apply(domains, Filter{}, nil, Sort{Compare: byLength, Order: Asc})
	assert.Equal(t, []string{"z.com", "bb.com", "aaa.com"}, names(got))
}

func TestSortUnknownFieldKeepsOrder(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "b.com", 100),
		newDomain(t, "a.com", 100),
	}
	got := Apply(domains, Filter{}, nil, Sort{Field: "bogus"})
	assert.Equal(t, []string{"b.com", "a.com"}, names(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	domains := []models.Domain{
		newDomain(t, "b.com", 100),
		newDomain(t, "a.com", 100),
	}
	_ = Apply(domains, Filter{}, nil, Sort{Field: SortByName, Order: Asc})
	assert.Equal(t, []string{"b.com", "a.com"}, names(domains))
}
