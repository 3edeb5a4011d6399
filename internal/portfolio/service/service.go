// Package service implements the portfolio lifecycle operations: listing
// with derived statuses, add with WHOIS backfill, partial update, the
// trash/restore/purge state machine, sales, and bulk WHOIS refresh.
//
// Every mutation is a read-modify-write of the full persisted list. There is
// no cross-process locking: concurrent writers are last-writer-wins, which
// is acceptable for the single-writer deployments this targets.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"domainfolio/internal/audit"
	"domainfolio/internal/platform/metrics"
	"domainfolio/internal/portfolio/models"
	"domainfolio/internal/portfolio/query"
	"domainfolio/internal/portfolio/store"
	"domainfolio/internal/whois"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/requestcontext"
)

// RegistrarDirectory resolves a registrar to its account ids for the
// registrar-level list filter.
type RegistrarDirectory interface {
	AccountIDs(ctx context.Context, registrarID uuid.UUID) ([]uuid.UUID, error)
}

// Service orchestrates portfolio reads and lifecycle mutations.
type Service struct {
	repo       store.Repository
	whois      whois.Client
	registrars RegistrarDirectory
	logger     *slog.Logger
	metrics    *metrics.Metrics
	audit      audit.Publisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(publisher audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

// New constructs a Service.
func New(repo store.Repository, whoisClient whois.Client, registrars RegistrarDirectory, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		whois:      whoisClient,
		registrars: registrars,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the visible portfolio subset: loads all records, rederives
// status and days-remaining as of the request clock, then applies the
// filter and sort. Derived fields are not written back; they are recomputed
// on every read.
func (s *Service) List(ctx context.Context, f query.Filter, srt query.Sort) ([]models.Domain, error) {
	domains, err := s.loadDerived(ctx)
	if err != nil {
		return nil, err
	}

	var accountIDs []uuid.UUID
	if f.RegistrarID != uuid.Nil {
		accountIDs, err = s.registrars.AccountIDs(ctx, f.RegistrarID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve registrar accounts")
		}
	}

	return query.Apply(domains, f, accountIDs, srt), nil
}

// Get returns one record with freshly derived fields.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Domain, error) {
	domains, err := s.loadDerived(ctx)
	if err != nil {
		return nil, err
	}
	for i := range domains {
		if domains[i].ID == id {
			return &domains[i], nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "domain not found")
}

// ListSold returns the sold records in sale order.
func (s *Service) ListSold(ctx context.Context) ([]models.SoldDomain, error) {
	sold, err := s.repo.LoadSold(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sold domains")
	}
	return sold, nil
}

// CheckAvailability asks the WHOIS collaborator whether a name is free.
func (s *Service) CheckAvailability(ctx context.Context, name string) (bool, error) {
	available, err := s.whois.CheckAvailability(ctx, name)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "availability check failed")
	}
	return available, nil
}

func (s *Service) loadDerived(ctx context.Context) ([]models.Domain, error) {
	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domains")
	}
	now := requestcontext.Now(ctx)
	for i := range domains {
		domains[i].Refresh(now)
	}
	return domains, nil
}

func (s *Service) emitAudit(ctx context.Context, d *models.Domain, action audit.Action, detail string) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		DomainID:  d.ID,
		Domain:    d.Name,
		Action:    action,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", string(action), "error", err.Error())
	}
}
