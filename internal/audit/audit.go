// Package audit records domain lifecycle events. Events are emitted from
// services after a successful mutation and are queryable per domain, giving
// the portfolio a server-side activity trail.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action names a lifecycle event.
type Action string

const (
	ActionDomainCreated  Action = "domain_created"
	ActionDomainUpdated  Action = "domain_updated"
	ActionDomainTrashed  Action = "domain_trashed"
	ActionDomainRestored Action = "domain_restored"
	ActionDomainPurged   Action = "domain_purged"
	ActionDomainSold     Action = "domain_sold"
	ActionWhoisRefreshed Action = "whois_refreshed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	DomainID  uuid.UUID `json:"domain_id"`
	Domain    string    `json:"domain"`
	Action    Action    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Publisher accepts events. Emit must not fail the calling mutation; sinks
// swallow their own errors.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
