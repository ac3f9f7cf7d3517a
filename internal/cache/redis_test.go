package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpersDegradeWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.False(t, Available())
	require.Error(t, Ping(ctx))

	CacheDashboard(ctx, []byte(`{}`))
	_, ok := GetCachedDashboard(ctx)
	require.False(t, ok)
	InvalidateDashboard(ctx)

	_, locked, err := NewLock(AlertSweepLock, 0).TryLock(ctx)
	require.Error(t, err)
	require.False(t, locked)
}

func TestNewLockDefaultsTTL(t *testing.T) {
	require.Equal(t, defaultLockTTL, NewLock("k", 0).TTL)
}
