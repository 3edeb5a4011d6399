package whois

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFetchIsDeterministicPerDomain(t *testing.T) {
	m := &Mock{}
	ctx := context.Background()

	first, err := m.Fetch(ctx, "example.com")
	require.NoError(t, err)
	second, err := m.Fetch(ctx, "EXAMPLE.com")
	require.NoError(t, err)

	assert.Equal(t, first.Registrar, second.Registrar)
	assert.Equal(t, first.RegistrationDate, second.RegistrationDate)
	assert.Equal(t, "example.com", second.Domain)
	assert.True(t, first.ExpirationDate.After(first.RegistrationDate))
}

func TestMockInjectedFailures(t *testing.T) {
	m := &Mock{FailEvery: 2}
	ctx := context.Background()

	_, err := m.Fetch(ctx, "one.com")
	require.NoError(t, err)
	_, err = m.Fetch(ctx, "two.com")
	require.Error(t, err)
	_, err = m.Fetch(ctx, "three.com")
	require.NoError(t, err)
}

func TestMockRespectsContextCancellation(t *testing.T) {
	m := NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Fetch(ctx, "example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockAvailabilityIsStable(t *testing.T) {
	m := &Mock{}
	ctx := context.Background()

	a, err := m.CheckAvailability(ctx, "example.com")
	require.NoError(t, err)
	b, err := m.CheckAvailability(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
