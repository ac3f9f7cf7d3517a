// Package alerts runs the due-date alert sweep and keeps each (entity, kind) alert to a single send.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"property-backend/internal/metrics"
)

type Category string

const (
	CategoryObligation Category = "obligation_due"
	CategoryRental     Category = "rental_ending"
	CategoryPayment    Category = "payment_reminder"
)

type outcome string

const (
	outcomeSent             outcome = "sent"
	outcomeAlreadySent      outcome = "already_sent"
	outcomePaid             outcome = "fully_paid"
	outcomeMissingRecipient outcome = "missing_recipient"
	outcomeFailed           outcome = "failed"
	outcomeDuplicate        outcome = "duplicate"
)

type Engine struct {
	obligations ObligationSource
	rentals     RentalSource
	ledger      Ledger
	notifier    Notifier
	recipients  []string
	locker      Locker
	now         func() time.Time
	log         *zap.Logger
}

// NewEngine wires the sweep. adminRecipients receive obligation alerts; blanks and duplicates are dropped.
func NewEngine(obligations ObligationSource, rentals RentalSource, ledger Ledger, notifier Notifier, adminRecipients []string, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		obligations: obligations,
		rentals:     rentals,
		ledger:      ledger,
		notifier:    notifier,
		recipients:  normalizeRecipients(adminRecipients),
		now:         time.Now,
		log:         log,
	}
}

// WithLocker makes Run skip when another sweep holds the lock.
func (e *Engine) WithLocker(l Locker) *Engine {
	e.locker = l
	return e
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) Recipients() []string {
	return append([]string(nil), e.recipients...)
}

// Run sweeps every lead day in order for the calendar date today. Per-entity failures
// are counted in the Summary and never abort the sweep; the returned error is set
// only for invalid arguments, lock errors, or context cancellation.
func (e *Engine) Run(ctx context.Context, today time.Time, leadDays []int) (*Summary, error) {
	for _, d := range leadDays {
		if d < 0 {
			return nil, fmt.Errorf("alerts: invalid lead day %d", d)
		}
	}

	sum := &Summary{Date: today, LeadDays: append([]int(nil), leadDays...)}

	if e.locker != nil {
		release, ok, err := e.locker.TryLock(ctx)
		if err != nil {
			return nil, fmt.Errorf("alerts: acquire sweep lock: %w", err)
		}
		if !ok {
			e.log.Info("sweep skipped, another sweep is running")
			sum.Locked = true
			return sum, nil
		}
		defer release()
	}

	e.log.Info("alert sweep started", zap.Time("date", today), zap.Ints("lead_days", leadDays))

	for _, days := range leadDays {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		target := today.AddDate(0, 0, days)
		kind := KindFor(days)

		e.sweepObligations(ctx, sum, target, kind, days)

		rentals, err := e.rentals.OccupiedRentalsEndingOn(ctx, target)
		if err != nil {
			e.sourceFailed(sum, CategoryRental, kind, err)
			continue
		}
		sortRentals(rentals)
		for _, r := range rentals {
			e.rentalEnding(ctx, sum, r, kind, days)
		}
		for _, r := range rentals {
			e.paymentReminder(ctx, sum, r, PaymentKind(kind), days)
		}
	}

	if err := ctx.Err(); err != nil {
		return sum, err
	}

	e.log.Info("alert sweep finished",
		zap.Int("sent", sum.Sent),
		zap.Int("already_sent", sum.AlreadySent),
		zap.Int("fully_paid", sum.FullyPaid),
		zap.Int("missing_recipient", sum.MissingRecipient),
		zap.Int("failed", sum.Failed),
		zap.Int("duplicates", sum.Duplicates),
	)
	return sum, nil
}

func (e *Engine) sweepObligations(ctx context.Context, sum *Summary, target time.Time, kind string, days int) {
	obligations, err := e.obligations.ObligationsDueOn(ctx, target)
	if err != nil {
		e.sourceFailed(sum, CategoryObligation, kind, err)
		return
	}
	sort.SliceStable(obligations, func(i, j int) bool { return obligations[i].ID < obligations[j].ID })

	for _, o := range obligations {
		if ctx.Err() != nil {
			return
		}
		ref := ObligationRef(o.ID)
		log := e.log.With(zap.Stringer("entity", ref), zap.String("alert_kind", kind))

		if o.FullyPaid() {
			e.count(sum, CategoryObligation, outcomePaid)
			log.Debug("obligation fully paid, no alert")
			continue
		}
		if e.alreadySent(ctx, sum, CategoryObligation, ref, kind, log) {
			continue
		}
		if len(e.recipients) == 0 {
			e.count(sum, CategoryObligation, outcomeMissingRecipient)
			log.Warn("no admin recipients configured, obligation alert skipped")
			continue
		}

		subject, body := ObligationMessage(o, days)
		var failed []string
		for _, to := range e.recipients {
			if err := e.notifier.Send(ctx, to, subject, body); err != nil {
				failed = append(failed, to)
				log.Error("obligation alert send failed", zap.String("recipient", to), zap.Error(err))
			}
		}
		// A partial failure leaves the pair unrecorded so the next sweep retries it.
		if len(failed) > 0 {
			e.fail(sum, CategoryObligation, ref, kind, fmt.Errorf("send failed for %s", strings.Join(failed, ", ")))
			continue
		}
		e.record(ctx, sum, CategoryObligation, Record{
			Entity:    ref,
			Kind:      kind,
			Recipient: strings.Join(e.recipients, ","),
		}, log)
	}
}

func (e *Engine) rentalEnding(ctx context.Context, sum *Summary, r EndingRental, kind string, days int) {
	if ctx.Err() != nil {
		return
	}
	ref := RentalRef(r.ID)
	log := e.log.With(zap.Stringer("entity", ref), zap.String("alert_kind", kind))

	if e.alreadySent(ctx, sum, CategoryRental, ref, kind, log) {
		return
	}
	if r.TenantEmail == "" {
		e.count(sum, CategoryRental, outcomeMissingRecipient)
		log.Warn("tenant has no email, rental ending alert skipped")
		return
	}
	subject, body := RentalEndingMessage(r, days)
	e.sendOne(ctx, sum, CategoryRental, ref, kind, r.TenantEmail, subject, body, log)
}

func (e *Engine) paymentReminder(ctx context.Context, sum *Summary, r EndingRental, kind string, days int) {
	if ctx.Err() != nil {
		return
	}
	ref := RentalRef(r.ID)
	log := e.log.With(zap.Stringer("entity", ref), zap.String("alert_kind", kind))

	if r.FullyPaid() {
		e.count(sum, CategoryPayment, outcomePaid)
		log.Debug("rental fully paid, no reminder")
		return
	}
	if e.alreadySent(ctx, sum, CategoryPayment, ref, kind, log) {
		return
	}
	if r.TenantEmail == "" {
		e.count(sum, CategoryPayment, outcomeMissingRecipient)
		log.Warn("tenant has no email, payment reminder skipped")
		return
	}
	subject, body := PaymentReminderMessage(r, days)
	e.sendOne(ctx, sum, CategoryPayment, ref, kind, r.TenantEmail, subject, body, log)
}

func (e *Engine) sendOne(ctx context.Context, sum *Summary, cat Category, ref EntityRef, kind, to, subject, body string, log *zap.Logger) {
	if err := e.notifier.Send(ctx, to, subject, body); err != nil {
		log.Error("alert send failed", zap.String("recipient", to), zap.Error(err))
		e.fail(sum, cat, ref, kind, err)
		return
	}
	e.record(ctx, sum, cat, Record{Entity: ref, Kind: kind, Recipient: to}, log)
}

// alreadySent consults the ledger. A lookup error is counted as a failure and the entity is skipped.
func (e *Engine) alreadySent(ctx context.Context, sum *Summary, cat Category, ref EntityRef, kind string, log *zap.Logger) bool {
	exists, err := e.ledger.Exists(ctx, ref, kind)
	if err != nil {
		log.Error("ledger lookup failed", zap.Error(err))
		e.fail(sum, cat, ref, kind, err)
		return true
	}
	if exists {
		e.count(sum, cat, outcomeAlreadySent)
		log.Debug("alert already sent")
	}
	return exists
}

func (e *Engine) record(ctx context.Context, sum *Summary, cat Category, rec Record, log *zap.Logger) {
	rec.SentAt = e.now()
	err := e.ledger.Create(ctx, rec)
	switch {
	case err == nil:
		e.count(sum, cat, outcomeSent)
		log.Info("alert sent", zap.String("recipient", rec.Recipient))
	case errors.Is(err, ErrAlreadyRecorded):
		// Another sweep recorded the pair between our lookup and insert.
		e.count(sum, cat, outcomeDuplicate)
		log.Warn("alert recorded concurrently by another sweep")
	default:
		// The notification went out but the ledger write failed; a later sweep may resend.
		log.Error("alert sent but ledger write failed", zap.Error(err))
		e.fail(sum, cat, rec.Entity, rec.Kind, err)
	}
}

func (e *Engine) sourceFailed(sum *Summary, cat Category, kind string, err error) {
	e.log.Error("alert source query failed", zap.String("category", string(cat)), zap.String("alert_kind", kind), zap.Error(err))
	e.fail(sum, cat, EntityRef{}, kind, err)
}

func (e *Engine) fail(sum *Summary, cat Category, ref EntityRef, kind string, err error) {
	e.count(sum, cat, outcomeFailed)
	sum.Failures = append(sum.Failures, Failure{Category: cat, Entity: ref, Kind: kind, Err: err.Error()})
}

func (e *Engine) count(sum *Summary, cat Category, o outcome) {
	metrics.AlertOutcomes.WithLabelValues(string(cat), string(o)).Inc()
	switch o {
	case outcomeSent:
		sum.Sent++
	case outcomeAlreadySent:
		sum.AlreadySent++
	case outcomePaid:
		sum.FullyPaid++
	case outcomeMissingRecipient:
		sum.MissingRecipient++
	case outcomeFailed:
		sum.Failed++
	case outcomeDuplicate:
		sum.Duplicates++
	}
}

func sortRentals(rs []EndingRental) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
}

func normalizeRecipients(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		key := strings.ToLower(r)
		if r == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
