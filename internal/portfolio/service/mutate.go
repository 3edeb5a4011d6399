package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"domainfolio/internal/audit"
	"domainfolio/internal/portfolio/models"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/requestcontext"
)

// AddDomain carries the fields a caller may supply when adding a domain.
// Blank dates trigger a WHOIS backfill.
type AddDomain struct {
	Name               string
	RegistrationDate   time.Time
	ExpirationDate     time.Time
	RegistrarAccountID uuid.UUID
	CategoryIDs        []uuid.UUID
	Price              float64
	Currency           string
}

// UpdateDomain lists the updatable fields; nil pointers are left untouched.
type UpdateDomain struct {
	Name               *string
	RegistrationDate   *time.Time
	ExpirationDate     *time.Time
	Status             *models.Status
	RegistrarAccountID *uuid.UUID
	CategoryIDs        *[]uuid.UUID
	Price              *float64
	Currency           *string
}

// Add creates a domain record. When registration or expiration dates are
// blank it asks the WHOIS collaborator to backfill them; a failed fetch is
// swallowed and replaced with defaults (today / today plus one year) so the
// domain is still added, just with placeholder dates.
func (s *Service) Add(ctx context.Context, req AddDomain) (*models.Domain, error) {
	now := requestcontext.Now(ctx)

	registration, expiration := req.RegistrationDate, req.ExpirationDate
	var whoisData *models.WhoisData
	if registration.IsZero() || expiration.IsZero() {
		rec, err := s.whois.Fetch(ctx, req.Name)
		if s.metrics != nil {
			s.metrics.ObserveWhoisFetch(err == nil)
		}
		if err != nil {
			s.logger.WarnContext(ctx, "whois backfill failed, using placeholder dates",
				"domain", req.Name, "error", err.Error())
			if registration.IsZero() {
				registration = now
			}
			if expiration.IsZero() {
				expiration = now.AddDate(1, 0, 0)
			}
		} else {
			if registration.IsZero() {
				registration = rec.RegistrationDate
			}
			if expiration.IsZero() {
				expiration = rec.ExpirationDate
			}
			whoisData = &models.WhoisData{
				Registrar:   rec.Registrar,
				NameServers: rec.NameServers,
				RefreshedAt: now,
			}
		}
	}

	d, err := models.NewDomain(uuid.New(), req.Name, registration, expiration, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	d.RegistrarAccountID = req.RegistrarAccountID
	d.CategoryIDs = req.CategoryIDs
	d.Price = req.Price
	d.Currency = req.Currency
	d.Whois = whoisData

	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domains")
	}
	domains = append(domains, *d)
	if err := s.repo.SaveDomains(ctx, domains); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save domains")
	}

	if s.metrics != nil {
		s.metrics.DomainsCreated.Inc()
	}
	s.emitAudit(ctx, d, audit.ActionDomainCreated, "")
	return d, nil
}

// Update merges the supplied fields into the record and bumps UpdatedAt.
// When the expiration date changes, no explicit status was supplied, and
// the record is not trashed, the status is rederived from the new date.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd UpdateDomain) (*models.Domain, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown status %q", string(*upd.Status))
	}

	var updated *models.Domain
	err := s.mutate(ctx, id, func(d *models.Domain, now time.Time) error {
		expirationChanged := false
		if upd.Name != nil {
			name := strings.ToLower(strings.TrimSpace(*upd.Name))
			if name == "" {
				return dErrors.New(dErrors.CodeValidation, "domain name cannot be empty")
			}
			d.Name = name
		}
		if upd.RegistrationDate != nil {
			d.RegistrationDate = *upd.RegistrationDate
		}
		if upd.ExpirationDate != nil && !upd.ExpirationDate.Equal(d.ExpirationDate) {
			d.ExpirationDate = *upd.ExpirationDate
			expirationChanged = true
		}
		if upd.RegistrarAccountID != nil {
			d.RegistrarAccountID = *upd.RegistrarAccountID
		}
		if upd.CategoryIDs != nil {
			d.CategoryIDs = *upd.CategoryIDs
		}
		if upd.Price != nil {
			d.Price = *upd.Price
		}
		if upd.Currency != nil {
			d.Currency = *upd.Currency
		}

		switch {
		case upd.Status != nil:
			d.Status = *upd.Status
		case expirationChanged && d.Status != models.StatusTrash:
			d.Refresh(now)
		}
		d.UpdatedAt = now
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, updated, audit.ActionDomainUpdated, "")
	return updated, nil
}

// SoftDelete moves the record to the trash. Idempotent: trashing a trashed
// record only bumps its timestamp.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (*models.Domain, error) {
	var trashed *models.Domain
	err := s.mutate(ctx, id, func(d *models.Domain, now time.Time) error {
		d.ApplyTrash(now)
		trashed = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, trashed, audit.ActionDomainTrashed, "")
	return trashed, nil
}

// Restore brings a trashed record back; its status is rederived from the
// current date. Fails with InvalidState when the record is not trashed.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*models.Domain, error) {
	var restored *models.Domain
	err := s.mutate(ctx, id, func(d *models.Domain, now time.Time) error {
		if err := d.CanRestore(); err != nil {
			return err
		}
		d.ApplyRestore(now)
		restored = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, restored, audit.ActionDomainRestored, "")
	return restored, nil
}

// PermanentlyDelete removes a trashed record from the persisted list.
// Irreversible. Fails with InvalidState when the record is not trashed.
func (s *Service) PermanentlyDelete(ctx context.Context, id uuid.UUID) error {
	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domains")
	}
	idx := indexOf(domains, id)
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "domain not found")
	}
	purged := domains[idx]
	if err := purged.CanPurge(); err != nil {
		return err
	}

	domains = append(domains[:idx], domains[idx+1:]...)
	if err := s.repo.SaveDomains(ctx, domains); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save domains")
	}
	if s.metrics != nil {
		s.metrics.DomainsPurged.Inc()
	}
	s.emitAudit(ctx, &purged, audit.ActionDomainPurged, "")
	return nil
}

// MarkSold freezes the record into the sold list and removes it from the
// active list in the same pass, so a sold domain never lingers there.
// Fails with InvalidState when the record is trashed.
func (s *Service) MarkSold(ctx context.Context, id uuid.UUID, sale models.SaleDetails) (*models.SoldDomain, error) {
	now := requestcontext.Now(ctx)

	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domains")
	}
	idx := indexOf(domains, id)
	if idx < 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "domain not found")
	}

	d := domains[idx]
	d.Refresh(now)
	if err := d.CanMarkSold(); err != nil {
		return nil, err
	}
	soldRecord, err := d.MarkSold(sale, now)
	if err != nil {
		return nil, err
	}

	sold, err := s.repo.LoadSold(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sold domains")
	}
	sold = append(sold, *soldRecord)
	if err := s.repo.SaveSold(ctx, sold); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save sold domains")
	}

	domains = append(domains[:idx], domains[idx+1:]...)
	if err := s.repo.SaveDomains(ctx, domains); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save domains")
	}

	if s.metrics != nil {
		s.metrics.DomainsSold.Inc()
	}
	s.emitAudit(ctx, &soldRecord.Domain, audit.ActionDomainSold, sale.Marketplace)
	return soldRecord, nil
}

// mutate runs the load-find-apply-save cycle shared by single-record
// mutations. The callback sees the record refreshed as of now and may
// return a coded error to abort without saving.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, apply func(d *models.Domain, now time.Time) error) error {
	now := requestcontext.Now(ctx)

	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domains")
	}
	idx := indexOf(domains, id)
	if idx < 0 {
		return dErrors.New(dErrors.CodeNotFound, "domain not found")
	}

	domains[idx].Refresh(now)
	if err := apply(&domains[idx], now); err != nil {
		return err
	}

	if err := s.repo.SaveDomains(ctx, domains); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save domains")
	}
	return nil
}

func indexOf(domains []models.Domain, id uuid.UUID) int {
	for i := range domains {
		if domains[i].ID == id {
			return i
		}
	}
	return -1
}
