package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"property-backend/internal/alerts"
	"property-backend/internal/booking"
	"property-backend/internal/cache"
	"property-backend/internal/config"
	"property-backend/internal/db"
	"property-backend/internal/logging"
	"property-backend/internal/notify"
	"property-backend/internal/observability"
	"property-backend/internal/repositories"
	"property-backend/internal/services"
	"property-backend/internal/timeutil"
)

// sweepLockKey is the pg advisory lock id used when redis is unavailable.
const sweepLockKey int64 = 0x70726f70

// app holds the process-wide dependencies every command needs.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	pool  *pgxpool.Pool
	close []func()
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	lg, err := logging.Init(cfg.Log.Level, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := &app{cfg: cfg, log: lg.Base}
	a.close = append(a.close, lg.Closer)

	loc, err := cfg.Location()
	if err != nil {
		a.shutdown()
		return nil, err
	}
	timeutil.SetLocation(loc)

	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Env, cfg.Sentry.Release)
	if err != nil {
		a.log.Warn("sentry disabled", zap.Error(err))
	}
	a.close = append(a.close, flush)

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		a.shutdown()
		return nil, err
	}
	a.pool = pool
	a.close = append(a.close, pool.Close)
	a.log.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

	if cfg.Redis.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		if err := cache.Init(addr, cfg.Redis.Password, cfg.Redis.DB, a.log.Named("cache")); err != nil {
			a.log.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			a.close = append(a.close, cache.Close)
		}
	}
	return a, nil
}

// shutdown runs closers in reverse order.
func (a *app) shutdown() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

func (a *app) notifier(logs *repositories.NotificationLogRepository) notify.Notifier {
	if a.cfg.Mail.Enabled {
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     a.cfg.Mail.Host,
			Port:     a.cfg.Mail.Port,
			Username: a.cfg.Mail.Username,
			Password: a.cfg.Mail.Password,
			From:     a.cfg.Mail.From,
		}, logs, a.log.Named("mail"))
	}
	a.log.Warn("SMTP not configured, mail is logged only")
	return notify.NewMockNotifier(logs, a.log.Named("mail"))
}

func (a *app) sweepLocker() alerts.Locker {
	ttl := time.Duration(a.cfg.Alerts.LockTTLMinutes) * time.Minute
	advisory := repositories.NewAdvisoryLocker(a.pool, sweepLockKey)
	if !cache.Available() {
		return advisory
	}
	return alerts.FallbackLocker{
		Primary:   cache.NewLock(cache.AlertSweepLock, ttl),
		Secondary: advisory,
		Log:       a.log.Named("alerts"),
	}
}

func (a *app) alertService() *services.AlertService {
	logs := repositories.NewNotificationLogRepository(a.pool)
	ledger := repositories.NewAlertLedgerRepository(a.pool)
	notifier := a.notifier(logs)

	if len(a.cfg.Alerts.AdminEmails) == 0 {
		a.log.Warn("no admin recipients configured, obligation alerts will be skipped")
	}
	engine := alerts.NewEngine(
		repositories.NewObligationRepository(a.pool),
		repositories.NewRentalRepository(a.pool),
		ledger,
		notifier,
		a.cfg.Alerts.AdminEmails,
		a.log.Named("alerts"),
	).WithLocker(a.sweepLocker())

	return services.NewAlertService(engine, ledger, logs, notifier, a.cfg.Alerts.LeadDays, a.log.Named("alerts"))
}

func (a *app) guard() *booking.Guard {
	return booking.NewGuard(booking.Policy{
		RequireDatesWhenAvailable: a.cfg.Booking.RequireDatesWhenAvailable,
	})
}
