// Package notify delivers outbound email and records every attempt.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	mail "gopkg.in/mail.v2"

	"property-backend/internal/models"
)

// Notifier sends a plain-text message to one recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogRepo persists delivery attempts.
type LogRepo interface {
	Create(ctx context.Context, entry *models.NotificationLog) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPNotifier sends through an SMTP relay.
type SMTPNotifier struct {
	cfg     SMTPConfig
	dialer  *mail.Dialer
	logRepo LogRepo
	log     *zap.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, logRepo LogRepo, log *zap.Logger) *SMTPNotifier {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = cfg.Timeout
	if log == nil {
		log = zap.NewNop()
	}
	return &SMTPNotifier{cfg: cfg, dialer: d, logRepo: logRepo, log: log}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ValidateAddress(to); err != nil {
		record(ctx, n.logRepo, n.log, to, subject, err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	err := n.dialer.DialAndSend(m)
	if err != nil {
		err = fmt.Errorf("smtp send to %s: %w", to, err)
	}
	record(ctx, n.logRepo, n.log, to, subject, err)
	return err
}

// MockNotifier keeps messages in memory and logs them instead of sending.
type MockNotifier struct {
	mu       sync.Mutex
	messages []Message
	logRepo  LogRepo
	log      *zap.Logger
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func NewMockNotifier(logRepo LogRepo, log *zap.Logger) *MockNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &MockNotifier{logRepo: logRepo, log: log}
}

func (n *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ValidateAddress(to); err != nil {
		record(ctx, n.logRepo, n.log, to, subject, err)
		return err
	}
	n.mu.Lock()
	n.messages = append(n.messages, Message{To: to, Subject: subject, Body: body})
	n.mu.Unlock()

	n.log.Info("mock email", zap.String("to", to), zap.String("subject", subject))
	record(ctx, n.logRepo, n.log, to, subject, nil)
	return nil
}

func (n *MockNotifier) Messages() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Message(nil), n.messages...)
}

// ValidateAddress rejects blank, multi-recipient and malformed addresses.
func ValidateAddress(to string) error {
	to = strings.TrimSpace(to)
	at := strings.LastIndexByte(to, '@')
	if to == "" || at <= 0 || at == len(to)-1 || strings.ContainsAny(to, " ,;") {
		return fmt.Errorf("invalid recipient address %q", to)
	}
	return nil
}

// record writes the attempt to the delivery log. Logging failures never fail the send.
func record(ctx context.Context, repo LogRepo, log *zap.Logger, to, subject string, sendErr error) {
	if repo == nil {
		return
	}
	entry := &models.NotificationLog{
		Recipient: to,
		Subject:   subject,
		Status:    models.NotificationStatusSent,
	}
	if sendErr != nil {
		entry.Status = models.NotificationStatusFailed
		entry.ErrorMessage = sendErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := repo.Create(ctx, entry); err != nil && log != nil {
		log.Warn("notification log write failed", zap.Error(err))
	}
}
