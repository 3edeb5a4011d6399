package service

import (
	"context"

	"github.com/google/uuid"

	"domainfolio/internal/audit"
	"domainfolio/internal/portfolio/models"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/requestcontext"
)

// RefreshResult reports the outcome for one domain of a bulk WHOIS refresh.
// Err is nil on success, so callers can distinguish "all succeeded" from
// partial failure without a side channel.
type RefreshResult struct {
	DomainID uuid.UUID `json:"domain_id"`
	Name     string    `json:"name"`
	Err      error     `json:"-"`
	Error    string    `json:"error,omitempty"`
}

// Failed reports whether any result in the batch carries an error.
func Failed(results []RefreshResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// RefreshWhois re-fetches WHOIS data for the given domains (all domains
// when ids is empty), updating registry metadata and expiration dates and
// rederiving statuses. The loop is sequential and collect-and-continue: a
// failed fetch is recorded per item and never aborts the remaining items.
// One save at the end persists whatever succeeded.
func (s *Service) RefreshWhois(ctx context.Context, ids []uuid.UUID) ([]RefreshResult, error) {
	now := requestcontext.Now(ctx)

	domains, err := s.repo.LoadDomains(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domains")
	}

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var (
		results []RefreshResult
		changed bool
	)
	for i := range domains {
		d := &domains[i]
		if len(wanted) > 0 {
			if _, ok := wanted[d.ID]; !ok {
				continue
			}
		}

		res := RefreshResult{DomainID: d.ID, Name: d.Name}
		rec, err := s.whois.Fetch(ctx, d.Name)
		if s.metrics != nil {
			s.metrics.ObserveWhoisFetch(err == nil)
		}
		if err != nil {
			res.Err = err
			res.Error = err.Error()
			s.logger.WarnContext(ctx, "whois refresh failed",
				"domain", d.Name, "error", err.Error())
			results = append(results, res)
			continue
		}

		d.Whois = &models.WhoisData{
			Registrar:   rec.Registrar,
			NameServers: rec.NameServers,
			RefreshedAt: now,
		}
		if !rec.RegistrationDate.IsZero() {
			d.RegistrationDate = rec.RegistrationDate
		}
		if !rec.ExpirationDate.IsZero() {
			d.ExpirationDate = rec.ExpirationDate
		}
		d.Refresh(now)
		d.UpdatedAt = now
		changed = true

		s.emitAudit(ctx, d, audit.ActionWhoisRefreshed, "")
		results = append(results, res)
	}

	if changed {
		if err := s.repo.SaveDomains(ctx, domains); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save domains")
		}
	}
	return results, nil
}
