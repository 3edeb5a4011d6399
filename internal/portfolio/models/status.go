package models

import "time"

// Status is the lifecycle status of a domain record.
//
// Statuses come in two classes:
//   - derived: active, expiring, expired — recomputed from the expiration
//     date every time a record is read, never trusted as stored truth.
//   - override: trash, sold — set by an explicit user action and sticky; the
//     deriver must never recompute them back to a derived status.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
	StatusTrash    Status = "trash"
	StatusSold     Status = "sold"
)

// ExpiringWindowDays is the threshold below which a live domain is
// considered expiring soon.
const ExpiringWindowDays = 30

// IsOverride reports whether s belongs to the sticky override class.
func (s Status) IsOverride() bool {
	return s == StatusTrash || s == StatusSold
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusExpiring, StatusExpired, StatusTrash, StatusSold:
		return true
	}
	return false
}

// DaysUntilExpiration computes the whole days remaining until expiration.
// Both dates are normalized to midnight UTC before subtracting, so partial
// days never shift the result. Negative when the domain is past expiry.
func DaysUntilExpiration(expiration, now time.Time) int {
	exp := midnight(expiration)
	cur := midnight(now)
	return int(exp.Sub(cur).Hours() / 24)
}

// DeriveStatus maps days-until-expiration onto the derived status class.
func DeriveStatus(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
