package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitAndListByDomain(t *testing.T) {
	log := NewInMemoryLog(nil)
	ctx := context.Background()

	domainID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, log.Emit(ctx, Event{DomainID: domainID, Domain: "a.com", Action: ActionDomainCreated}))
	require.NoError(t, log.Emit(ctx, Event{DomainID: otherID, Domain: "b.com", Action: ActionDomainCreated}))
	require.NoError(t, log.Emit(ctx, Event{DomainID: domainID, Domain: "a.com", Action: ActionDomainTrashed}))

	events, err := log.ListByDomain(ctx, domainID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionDomainCreated, events[0].Action)
	assert.Equal(t, ActionDomainTrashed, events[1].Action)

	for _, e := range events {
		assert.NotEqual(t, uuid.Nil, e.ID, "emit assigns ids")
		assert.False(t, e.Timestamp.IsZero(), "emit assigns timestamps")
	}
}

func TestListByDomainUnknownIsEmpty(t *testing.T) {
	log := NewInMemoryLog(nil)
	events, err := log.ListByDomain(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, events)
}
