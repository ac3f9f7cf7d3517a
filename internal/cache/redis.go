package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DashboardKey   = "dashboard:summary"
	AlertSweepLock = "lock:alert-sweep"
	dashboardTTL   = 5 * time.Minute
	defaultLockTTL = 30 * time.Minute
	connectTimeout = 5 * time.Second
)

var client *redis.Client

// Init connects to redis. On failure the client stays nil and every helper degrades to a no-op.
func Init(addr, password string, db int, log *zap.Logger) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		client = nil
		return fmt.Errorf("redis ping %s: %w", addr, err)
	}
	client = c
	if log != nil {
		log.Info("redis connected", zap.String("addr", addr))
	}
	return nil
}

// SetClient replaces the package client.
func SetClient(c *redis.Client) {
	client = c
}

func Available() bool {
	return client != nil
}

func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis not configured")
	}
	return client.Ping(ctx).Err()
}

func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// GetCachedDashboard returns the cached dashboard payload if present.
func GetCachedDashboard(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func CacheDashboard(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardKey, data, dashboardTTL)
}

// InvalidateDashboard is called after any write that changes dashboard figures.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardKey)
}

// releaseScript deletes the lock only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a SET NX lock with expiry. It satisfies alerts.Locker.
type Lock struct {
	Key string
	TTL time.Duration
}

func NewLock(key string, ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Lock{Key: key, TTL: ttl}
}

func (l *Lock) TryLock(ctx context.Context) (func(), bool, error) {
	if client == nil {
		return nil, false, fmt.Errorf("redis not configured")
	}
	token, err := newToken()
	if err != nil {
		return nil, false, err
	}
	ok, err := client.SetNX(ctx, l.Key, token, l.TTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis lock %s: %w", l.Key, err)
	}
	if !ok {
		return nil, false, nil
	}
	c := client
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		releaseScript.Run(ctx, c, []string{l.Key}, token)
	}
	return release, true, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
