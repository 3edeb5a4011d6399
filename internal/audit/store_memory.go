package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryLog is a Publisher that appends events to memory and mirrors them
// to the structured log. Events are kept in emission order.
type InMemoryLog struct {
	logger *slog.Logger

	mu     sync.RWMutex
	events []Event
}

func NewInMemoryLog(logger *slog.Logger) *InMemoryLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryLog{logger: logger}
}

func (l *InMemoryLog) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "audit event",
		"action", string(event.Action),
		"domain_id", event.DomainID,
		"domain", event.Domain,
		"request_id", event.RequestID,
	)
	return nil
}

// ListByDomain returns events for one domain in emission order.
func (l *InMemoryLog) ListByDomain(_ context.Context, domainID uuid.UUID) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Event
	for _, e := range l.events {
		if e.DomainID == domainID {
			out = append(out, e)
		}
	}
	return out, nil
}
