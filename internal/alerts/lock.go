package alerts

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// FallbackLocker tries Primary and falls back to Secondary only when Primary errors.
// A Primary that answers "held elsewhere" is authoritative.
type FallbackLocker struct {
	Primary   Locker
	Secondary Locker
	Log       *zap.Logger
}

func (f FallbackLocker) TryLock(ctx context.Context) (func(), bool, error) {
	if f.Primary != nil {
		release, ok, err := f.Primary.TryLock(ctx)
		if err == nil {
			return release, ok, nil
		}
		if f.Secondary == nil {
			return nil, false, err
		}
		if f.Log != nil {
			f.Log.Warn("primary sweep lock unavailable, using fallback", zap.Error(err))
		}
	}
	if f.Secondary == nil {
		return nil, false, fmt.Errorf("alerts: no sweep lock configured")
	}
	return f.Secondary.TryLock(ctx)
}
