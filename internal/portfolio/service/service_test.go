package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"domainfolio/internal/audit"
	"domainfolio/internal/portfolio/models"
	"domainfolio/internal/portfolio/query"
	"domainfolio/internal/portfolio/store"
	"domainfolio/internal/whois"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/requestcontext"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fakeWhois is a scriptable WHOIS collaborator.
type fakeWhois struct {
	record  *whois.Record
	err     error
	failFor map[string]error
	calls   []string
}

func (f *fakeWhois) Fetch(_ context.Context, domain string) (*whois.Record, error) {
	f.calls = append(f.calls, domain)
	if err, ok := f.failFor[domain]; ok {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.record != nil {
		rec := *f.record
		rec.Domain = domain
		return &rec, nil
	}
	return &whois.Record{
		Domain:           domain,
		Registrar:        "Fake Registrar",
		RegistrationDate: testNow.AddDate(-3, 0, 0),
		ExpirationDate:   testNow.AddDate(0, 0, 200),
		QueryTime:        testNow,
	}, nil
}

func (f *fakeWhois) CheckAvailability(context.Context, string) (bool, error) {
	return false, nil
}

// fakeDirectory maps registrar ids to account id sets.
type fakeDirectory struct {
	accounts map[uuid.UUID][]uuid.UUID
}

func (f *fakeDirectory) AccountIDs(_ context.Context, registrarID uuid.UUID) ([]uuid.UUID, error) {
	return f.accounts[registrarID], nil
}

type ServiceSuite struct {
	suite.Suite
	repo      *store.InMemory
	whois     *fakeWhois
	directory *fakeDirectory
	auditLog  *audit.InMemoryLog
	svc       *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.repo = store.NewInMemory()
	s.whois = &fakeWhois{failFor: map[string]error{}}
	s.directory = &fakeDirectory{accounts: map[uuid.UUID][]uuid.UUID{}}
	s.auditLog = audit.NewInMemoryLog(nil)
	s.svc = New(s.repo, s.whois, s.directory, WithAudit(s.auditLog))
	s.ctx = requestcontext.WithTime(context.Background(), testNow)
}

func (s *ServiceSuite) addDomain(name string, daysLeft int) *models.Domain {
	d, err := s.svc.Add(s.ctx, AddDomain{
		Name:             name,
		RegistrationDate: testNow.AddDate(-1, 0, 0),
		ExpirationDate:   testNow.AddDate(0, 0, daysLeft),
	})
	s.Require().NoError(err)
	return d
}

func (s *ServiceSuite) TestAddWithExplicitDates() {
	d := s.addDomain("example.com", 5)

	s.Equal(models.StatusExpiring, d.Status)
	s.Equal(5, d.DaysUntilExpiration)
	s.Empty(s.whois.calls, "explicit dates must not trigger a WHOIS fetch")

	stored, err := s.repo.LoadDomains(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal("example.com", stored[0].Name)
}

func (s *ServiceSuite) TestAddBackfillsFromWhois() {
	d, err := s.svc.Add(s.ctx, AddDomain{Name: "backfill.com"})
	s.Require().NoError(err)

	s.Equal([]string{"backfill.com"}, s.whois.calls)
	s.Equal(testNow.AddDate(0, 0, 200), d.ExpirationDate)
	s.Equal(models.StatusActive, d.Status)
	s.Require().NotNil(d.Whois)
	s.Equal("Fake Registrar", d.Whois.Registrar)
}

func (s *ServiceSuite) TestAddFallsBackWhenWhoisFails() {
	s.whois.err = errors.New("registry timeout")

	d, err := s.svc.Add(s.ctx, AddDomain{Name: "fallback.com"})
	s.Require().NoError(err, "a failed WHOIS fetch must not block the add")

	s.Equal(testNow, d.RegistrationDate)
	s.Equal(testNow.AddDate(1, 0, 0), d.ExpirationDate)
	s.Nil(d.Whois)
	s.Equal(models.StatusActive, d.Status)
}

func (s *ServiceSuite) TestAddRejectsInvalidName() {
	_, err := s.svc.Add(s.ctx, AddDomain{Name: "", ExpirationDate: testNow.AddDate(1, 0, 0)})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestGetUnknownIDIsNotFound() {
	_, err := s.svc.Get(s.ctx, uuid.New())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateRecomputesStatusOnExpirationChange() {
	d := s.addDomain("example.com", 300)
	s.Equal(models.StatusActive, d.Status)

	newExp := testNow.AddDate(0, 0, 10)
	updated, err := s.svc.Update(s.ctx, d.ID, UpdateDomain{ExpirationDate: &newExp})
	s.Require().NoError(err)
	s.Equal(models.StatusExpiring, updated.Status)
	s.Equal(10, updated.DaysUntilExpiration)
}

func (s *ServiceSuite) TestUpdateKeepsTrashOverride() {
	d := s.addDomain("example.com", 300)
	_, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)

	newExp := testNow.AddDate(0, 0, 10)
	updated, err := s.svc.Update(s.ctx, d.ID, UpdateDomain{ExpirationDate: &newExp})
	s.Require().NoError(err)
	s.Equal(models.StatusTrash, updated.Status, "expiration change must not clear the trash override")
}

func (s *ServiceSuite) TestUpdateExplicitStatusWins() {
	d := s.addDomain("example.com", 300)

	st := models.StatusExpired
	newExp := testNow.AddDate(0, 0, 500)
	updated, err := s.svc.Update(s.ctx, d.ID, UpdateDomain{ExpirationDate: &newExp, Status: &st})
	s.Require().NoError(err)
	s.Equal(models.StatusExpired, updated.Status)
}

func (s *ServiceSuite) TestUpdateUnknownIDIsNotFound() {
	name := "x.com"
	_, err := s.svc.Update(s.ctx, uuid.New(), UpdateDomain{Name: &name})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSoftDeleteIsIdempotent() {
	d := s.addDomain("example.com", 5)

	first, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusTrash, first.Status)

	second, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusTrash, second.Status)
}

func (s *ServiceSuite) TestRestoreRederivesStatus() {
	d := s.addDomain("example.com", 10)
	_, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)

	restored, err := s.svc.Restore(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusExpiring, restored.Status)
	s.Equal(10, restored.DaysUntilExpiration)
}

func (s *ServiceSuite) TestRestoreRequiresTrash() {
	d := s.addDomain("example.com", 10)

	_, err := s.svc.Restore(s.ctx, d.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func (s *ServiceSuite) TestTrashRestoreTrashEndsInTrash() {
	d := s.addDomain("example.com", 400)

	_, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)
	_, err = s.svc.Restore(s.ctx, d.ID)
	s.Require().NoError(err)
	final, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)

	s.Equal(models.StatusTrash, final.Status, "final status is trash regardless of expiration date")
}

func (s *ServiceSuite) TestPermanentlyDeleteRequiresTrash() {
	d := s.addDomain("example.com", 10)

	err := s.svc.PermanentlyDelete(s.ctx, d.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))

	stored, err := s.repo.LoadDomains(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 1, "a failed purge must leave the list unchanged")
}

func (s *ServiceSuite) TestPermanentlyDeleteRemovesRecord() {
	d := s.addDomain("example.com", 10)
	_, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.PermanentlyDelete(s.ctx, d.ID))

	stored, err := s.repo.LoadDomains(s.ctx)
	s.Require().NoError(err)
	s.Empty(stored)

	err = s.svc.PermanentlyDelete(s.ctx, d.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestMarkSoldMovesRecordToSoldList() {
	d := s.addDomain("example.com", 100)

	sold, err := s.svc.MarkSold(s.ctx, d.ID, models.SaleDetails{
		SaleDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		SalePrice:     500,
		PurchasePrice: 100,
	})
	s.Require().NoError(err)
	s.Equal(float64(400), sold.ROI)
	s.Equal(models.StatusSold, sold.Status)

	active, err := s.repo.LoadDomains(s.ctx)
	s.Require().NoError(err)
	s.Empty(active, "sold domains must not linger in the active list")

	soldList, err := s.svc.ListSold(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(soldList, 1)
	s.Equal("example.com", soldList[0].Name)
}

func (s *ServiceSuite) TestMarkSoldRejectsTrashed() {
	d := s.addDomain("example.com", 100)
	_, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)

	_, err = s.svc.MarkSold(s.ctx, d.ID, models.SaleDetails{SalePrice: 500, PurchasePrice: 100})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func (s *ServiceSuite) TestMarkSoldRejectsZeroPurchasePrice() {
	d := s.addDomain("example.com", 100)

	_, err := s.svc.MarkSold(s.ctx, d.ID, models.SaleDetails{SalePrice: 500, PurchasePrice: 0})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestListFilters() {
	s.addDomain("live.com", 300)
	s.addDomain("soon.com", 5)
	expired := s.addDomain("gone.com", -3)

	got, err := s.svc.List(s.ctx, query.Filter{Status: models.StatusExpired}, query.Sort{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(expired.ID, got[0].ID)
}

func (s *ServiceSuite) TestListExcludesTrash() {
	s.addDomain("kept.com", 300)
	trashed := s.addDomain("trashed.com", 300)
	_, err := s.svc.SoftDelete(s.ctx, trashed.ID)
	s.Require().NoError(err)

	got, err := s.svc.List(s.ctx, query.Filter{ExcludeTrash: true}, query.Sort{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("kept.com", got[0].Name)
}

func (s *ServiceSuite) TestListRegistrarJoin() {
	accountID := uuid.New()
	registrarID := uuid.New()
	s.directory.accounts[registrarID] = []uuid.UUID{accountID}

	d, err := s.svc.Add(s.ctx, AddDomain{
		Name:               "mine.com",
		ExpirationDate:     testNow.AddDate(1, 0, 0),
		RegistrarAccountID: accountID,
	})
	s.Require().NoError(err)
	s.addDomain("other.com", 300)

	got, err := s.svc.List(s.ctx, query.Filter{RegistrarID: registrarID}, query.Sort{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(d.ID, got[0].ID)
}

func (s *ServiceSuite) TestListDerivesStatusAtReadTime() {
	d := s.addDomain("example.com", 40)

	// Two weeks later the same stored record reads as expiring.
	later := requestcontext.WithTime(context.Background(), testNow.AddDate(0, 0, 14))
	got, err := s.svc.Get(later, d.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusExpiring, got.Status)
	s.Equal(26, got.DaysUntilExpiration)
}

func (s *ServiceSuite) TestRefreshWhoisCollectsAndContinues() {
	a := s.addDomain("a.com", 100)
	b := s.addDomain("b.com", 100)
	c := s.addDomain("c.com", 100)
	s.whois.failFor["b.com"] = errors.New("registry timeout")
	s.whois.calls = nil

	results, err := s.svc.RefreshWhois(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(results, 3)
	s.Equal([]string{"a.com", "b.com", "c.com"}, s.whois.calls, "failure must not abort the loop")

	s.NoError(results[0].Err)
	s.Error(results[1].Err)
	s.NoError(results[2].Err)
	s.True(Failed(results))

	stored, err := s.repo.LoadDomains(s.ctx)
	s.Require().NoError(err)
	for _, d := range stored {
		switch d.ID {
		case a.ID, c.ID:
			s.NotNil(d.Whois)
		case b.ID:
			s.Nil(d.Whois, "failed item keeps its previous metadata")
		}
	}
}

func (s *ServiceSuite) TestRefreshWhoisSubset() {
	a := s.addDomain("a.com", 100)
	s.addDomain("b.com", 100)
	s.whois.calls = nil

	results, err := s.svc.RefreshWhois(s.ctx, []uuid.UUID{a.ID})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("a.com", results[0].Name)
	s.False(Failed(results))
}

func (s *ServiceSuite) TestLifecycleEmitsAuditTrail() {
	d := s.addDomain("example.com", 100)
	_, err := s.svc.SoftDelete(s.ctx, d.ID)
	s.Require().NoError(err)
	_, err = s.svc.Restore(s.ctx, d.ID)
	s.Require().NoError(err)

	events, err := s.auditLog.ListByDomain(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal(audit.ActionDomainCreated, events[0].Action)
	s.Equal(audit.ActionDomainTrashed, events[1].Action)
	s.Equal(audit.ActionDomainRestored, events[2].Action)
}
