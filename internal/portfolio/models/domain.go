package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "domainfolio/pkg/domain-errors"
)

// WhoisData is the registry metadata attached to a domain after a WHOIS
// fetch or refresh.
type WhoisData struct {
	Registrar   string    `json:"registrar"`
	NameServers []string  `json:"name_servers,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Domain is the aggregate root for a portfolio entry.
//
// Invariants:
//   - Name is a non-empty fully-qualified domain name, stored lowercase
//   - ExpirationDate is set (possibly in the past)
//   - Status is consistent with DaysUntilExpiration unless it is an
//     override status (trash, sold) — see Status
//   - CreatedAt is immutable; UpdatedAt is bumped on every mutation
//
// Lifecycle transitions are expressed as CanX/ApplyX pairs so services can
// validate inside load-mutate-save cycles and apply with a shared "now".
type Domain struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	RegistrationDate    time.Time   `json:"registration_date"`
	ExpirationDate      time.Time   `json:"expiration_date"`
	Status              Status      `json:"status"`
	DaysUntilExpiration int         `json:"days_until_expiration"`
	RegistrarAccountID  uuid.UUID   `json:"registrar_account_id,omitempty"`
	CategoryIDs         []uuid.UUID `json:"category_ids,omitempty"`
	Price               float64     `json:"price,omitempty"`
	Currency            string      `json:"currency,omitempty"`
	Whois               *WhoisData  `json:"whois_data,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// NewDomain constructs a domain record with derived fields computed as of now.
func NewDomain(id uuid.UUID, name string, registration, expiration, now time.Time) (*Domain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "domain name cannot be empty")
	}
	if !strings.Contains(name, ".") {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "domain name must contain a dot")
	}
	if expiration.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "expiration date is required")
	}
	d := &Domain{
		ID:               id,
		Name:             name,
		RegistrationDate: registration,
		ExpirationDate:   expiration,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	d.Refresh(now)
	return d, nil
}

// Refresh recomputes the derived fields from the expiration date.
// DaysUntilExpiration is always recomputed; the status only when it is not
// an override (trash and sold are sticky).
func (d *Domain) Refresh(now time.Time) {
	d.DaysUntilExpiration = DaysUntilExpiration(d.ExpirationDate, now)
	if d.Status.IsOverride() {
		return
	}
	d.Status = DeriveStatus(d.DaysUntilExpiration)
}

// TLD returns the top-level domain, the suffix after the last dot in Name.
func (d *Domain) TLD() string {
	if i := strings.LastIndex(d.Name, "."); i >= 0 {
		return d.Name[i+1:]
	}
	return ""
}

// ApplyTrash moves the record to the trash. No state check: trashing an
// already-trashed record is a harmless no-op apart from the timestamp bump.
func (d *Domain) ApplyTrash(now time.Time) {
	d.Status = StatusTrash
	d.UpdatedAt = now
}

// CanRestore checks that the record is in the trash.
func (d *Domain) CanRestore() error {
	if d.Status != StatusTrash {
		return dErrors.New(dErrors.CodeInvalidState, "only trashed domains can be restored")
	}
	return nil
}

// ApplyRestore clears the trash override and rederives the status as of now.
// Call CanRestore first.
func (d *Domain) ApplyRestore(now time.Time) {
	d.Status = StatusActive // clear the override so Refresh rederives
	d.Refresh(now)
	d.UpdatedAt = now
}

// CanPurge checks that the record may be permanently deleted. Permanent
// deletion is only reachable through the trash.
func (d *Domain) CanPurge() error {
	if d.Status != StatusTrash {
		return dErrors.New(dErrors.CodeInvalidState, "only trashed domains can be permanently deleted")
	}
	return nil
}

// CanMarkSold checks that the record may be sold. Trashed domains must be
// restored first.
func (d *Domain) CanMarkSold() error {
	if d.Status == StatusTrash {
		return dErrors.New(dErrors.CodeInvalidState, "trashed domains cannot be marked sold")
	}
	return nil
}
