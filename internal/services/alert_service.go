package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"property-backend/internal/alerts"
	"property-backend/internal/models"
	"property-backend/internal/notify"
	"property-backend/internal/observability"
	"property-backend/internal/repositories"
	"property-backend/internal/timeutil"
)

// AlertService exposes the alert sweep and the manual mail surface.
type AlertService struct {
	Engine          *alerts.Engine
	Ledger          *repositories.AlertLedgerRepository
	Logs            *repositories.NotificationLogRepository
	Notifier        notify.Notifier
	DefaultLeadDays []int
	log             *zap.Logger
}

func NewAlertService(engine *alerts.Engine, ledger *repositories.AlertLedgerRepository, logs *repositories.NotificationLogRepository, notifier notify.Notifier, leadDays []int, log *zap.Logger) *AlertService {
	if len(leadDays) == 0 {
		leadDays = []int{5, 1}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AlertService{
		Engine:          engine,
		Ledger:          ledger,
		Logs:            logs,
		Notifier:        notifier,
		DefaultLeadDays: leadDays,
		log:             log,
	}
}

// Run sweeps for date (today in the business timezone when empty) using days or the configured defaults.
func (s *AlertService) Run(ctx context.Context, days []int, date string) (*alerts.Summary, error) {
	if len(days) == 0 {
		days = s.DefaultLeadDays
	}
	for _, d := range days {
		if d < 0 {
			return nil, invalid("alert_days", "must not contain negative values")
		}
	}

	today := timeutil.Today()
	if strings.TrimSpace(date) != "" {
		d, err := requiredDate("date", date)
		if err != nil {
			return nil, err
		}
		today = d
	}

	sum, err := s.Engine.Run(ctx, today, days)
	if err != nil {
		observability.CaptureErr(err)
		return sum, err
	}
	if sum.Failed > 0 {
		observability.CaptureErr(fmt.Errorf("alert sweep %s: %d failures", today.Format(timeutil.DateLayout), sum.Failed))
	}
	return sum, nil
}

func (s *AlertService) ListRecords(ctx context.Context, entityKind string, opts repositories.ListOptions) ([]*models.AlertRecord, int, error) {
	switch alerts.EntityKind(entityKind) {
	case "", alerts.EntityObligation, alerts.EntityRental:
	default:
		return nil, 0, invalid("entity_kind", "must be obligation or rental")
	}
	return s.Ledger.List(ctx, entityKind, opts)
}

// SendEmail sends an ad hoc message. It does not touch the alert ledger.
func (s *AlertService) SendEmail(ctx context.Context, req *models.SendEmailRequest) error {
	to := strings.TrimSpace(req.ToEmail)
	if err := notify.ValidateAddress(to); err != nil {
		return invalid("to_email", "is not a valid address")
	}
	if err := requireText("subject", req.Subject); err != nil {
		return err
	}
	if err := requireText("message", req.Message); err != nil {
		return err
	}
	if err := s.Notifier.Send(ctx, to, req.Subject, req.Message); err != nil {
		s.log.Error("manual email failed", zap.String("recipient", to), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (s *AlertService) ListNotificationLogs(ctx context.Context, status string, opts repositories.ListOptions) ([]*models.NotificationLog, int, error) {
	if status != "" {
		if err := oneOf("status", status, []string{models.NotificationStatusSent, models.NotificationStatusFailed}); err != nil {
			return nil, 0, err
		}
	}
	return s.Logs.List(ctx, status, opts)
}

// ScheduledRun is the job body for the daily sweep.
func (s *AlertService) ScheduledRun(ctx context.Context) error {
	sum, err := s.Run(ctx, nil, "")
	if err != nil {
		return err
	}
	s.log.Info("scheduled alert sweep done",
		zap.Int("sent", sum.Sent),
		zap.Int("skipped", sum.Skipped()),
		zap.Int("failed", sum.Failed),
		zap.Bool("locked", sum.Locked),
	)
	return nil
}
