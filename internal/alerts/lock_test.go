package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocker struct {
	ok    bool
	err   error
	calls int
}

func (s *stubLocker) TryLock(context.Context) (func(), bool, error) {
	s.calls++
	if s.err != nil || !s.ok {
		return nil, false, s.err
	}
	return func() {}, true, nil
}

func TestFallbackLocker(t *testing.T) {
	ctx := context.Background()

	primary, secondary := &stubLocker{ok: true}, &stubLocker{ok: true}
	_, ok, err := FallbackLocker{Primary: primary, Secondary: secondary}.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, secondary.calls)

	// held elsewhere is not a reason to fall back
	primary, secondary = &stubLocker{ok: false}, &stubLocker{ok: true}
	_, ok, err = FallbackLocker{Primary: primary, Secondary: secondary}.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, secondary.calls)

	primary, secondary = &stubLocker{err: errors.New("redis down")}, &stubLocker{ok: true}
	_, ok, err = FallbackLocker{Primary: primary, Secondary: secondary}.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, secondary.calls)

	_, _, err = FallbackLocker{}.TryLock(ctx)
	assert.Error(t, err)
}
