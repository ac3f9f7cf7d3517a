package alerts

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var today = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

type fakeObligations struct {
	items []DueObligation
	err   error
}

func (f *fakeObligations) ObligationsDueOn(_ context.Context, date time.Time) ([]DueObligation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []DueObligation
	for _, o := range f.items {
		if o.DueDate.Equal(date) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeRentals struct {
	items []EndingRental
}

func (f *fakeRentals) OccupiedRentalsEndingOn(_ context.Context, date time.Time) ([]EndingRental, error) {
	var out []EndingRental
	for _, r := range f.items {
		if r.CheckOut.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type ledgerKey struct {
	ref  EntityRef
	kind string
}

type fakeLedger struct {
	mu        sync.Mutex
	records   map[ledgerKey]Record
	createErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: map[ledgerKey]Record{}}
}

func (l *fakeLedger) Exists(_ context.Context, ref EntityRef, kind string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.records[ledgerKey{ref, kind}]
	return ok, nil
}

func (l *fakeLedger) Create(_ context.Context, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.createErr != nil {
		return l.createErr
	}
	k := ledgerKey{rec.Entity, rec.Kind}
	if _, ok := l.records[k]; ok {
		return ErrAlreadyRecorded
	}
	l.records[k] = rec
	return nil
}

func (l *fakeLedger) keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for k := range l.records {
		out = append(out, k.ref.String()+"/"+k.kind)
	}
	sort.Strings(out)
	return out
}

type sent struct {
	to, subject string
}

type fakeNotifier struct {
	sent   []sent
	failTo map[string]error
}

func (n *fakeNotifier) Send(_ context.Context, to, subject, _ string) error {
	if err := n.failTo[to]; err != nil {
		return err
	}
	n.sent = append(n.sent, sent{to: to, subject: subject})
	return nil
}

type fixture struct {
	obligations *fakeObligations
	rentals     *fakeRentals
	ledger      *fakeLedger
	notifier    *fakeNotifier
	logs        *observer.ObservedLogs
	engine      *Engine
}

func newFixture(recipients ...string) *fixture {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		obligations: &fakeObligations{},
		rentals:     &fakeRentals{},
		ledger:      newFakeLedger(),
		notifier:    &fakeNotifier{failTo: map[string]error{}},
		logs:        logs,
	}
	f.engine = NewEngine(f.obligations, f.rentals, f.ledger, f.notifier, recipients, zap.New(core)).
		WithClock(func() time.Time { return today.Add(8 * time.Hour) })
	return f
}

func (f *fixture) run(t *testing.T, days ...int) *Summary {
	t.Helper()
	sum, err := f.engine.Run(context.Background(), today, days)
	require.NoError(t, err)
	return sum
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func obligation(id, inDays int, amount, paid string) DueObligation {
	return DueObligation{
		ID:           id,
		EntityName:   "City tax",
		PropertyName: "Loft 4",
		Temporality:  "annual",
		Amount:       money(amount),
		Paid:         money(paid),
		DueDate:      today.AddDate(0, 0, inDays),
	}
}

func rental(id, inDays int, email, amount, paid string) EndingRental {
	return EndingRental{
		ID:           id,
		PropertyName: "Casa Norte",
		RentalType:   "monthly",
		TenantName:   "Rosa Diaz",
		TenantEmail:  email,
		CheckIn:      today.AddDate(0, -1, 0),
		CheckOut:     today.AddDate(0, 0, inDays),
		Amount:       money(amount),
		Paid:         money(paid),
	}
}

func TestKindFor(t *testing.T) {
	require.Equal(t, "5_days", KindFor(5))
	require.Equal(t, "1_day", KindFor(1))
	require.Equal(t, "same_day", KindFor(0))
	require.Equal(t, "10_days", KindFor(10))
	require.Equal(t, "payment_5_days", PaymentKind(KindFor(5)))
}

func TestObligationAlertSentOnceToEveryAdmin(t *testing.T) {
	f := newFixture("a@x.com", "b@x.com")
	f.obligations.items = []DueObligation{obligation(7, 5, "500000", "0")}

	sum := f.run(t, 5, 1)
	require.Equal(t, 1, sum.Sent)
	require.Len(t, f.notifier.sent, 2)
	require.Equal(t, "a@x.com", f.notifier.sent[0].to)
	require.Equal(t, "b@x.com", f.notifier.sent[1].to)
	require.Equal(t, "Obligation approaching due date: City tax", f.notifier.sent[0].subject)
	require.Equal(t, []string{"obligation:7/5_days"}, f.ledger.keys())
	require.Equal(t, "a@x.com,b@x.com", f.ledger.records[ledgerKey{ObligationRef(7), "5_days"}].Recipient)

	again := f.run(t, 5, 1)
	require.Zero(t, again.Sent)
	require.Equal(t, 1, again.AlreadySent)
	require.Len(t, f.notifier.sent, 2)
	require.Equal(t, []string{"obligation:7/5_days"}, f.ledger.keys())
}

func TestObligationPaidBoundary(t *testing.T) {
	t.Run("paid exactly the amount", func(t *testing.T) {
		f := newFixture("a@x.com")
		f.obligations.items = []DueObligation{obligation(1, 5, "1200.50", "1200.50")}

		sum := f.run(t, 5)
		require.Zero(t, sum.Sent)
		require.Equal(t, 1, sum.FullyPaid)
		require.Empty(t, f.notifier.sent)
		require.Empty(t, f.ledger.keys())
	})

	t.Run("one cent short", func(t *testing.T) {
		f := newFixture("a@x.com")
		f.obligations.items = []DueObligation{obligation(1, 5, "1200.50", "1200.49")}

		sum := f.run(t, 5)
		require.Equal(t, 1, sum.Sent)
		require.Equal(t, []string{"obligation:1/5_days"}, f.ledger.keys())
	})

	t.Run("overpaid", func(t *testing.T) {
		f := newFixture("a@x.com")
		f.obligations.items = []DueObligation{obligation(1, 5, "100", "100.01")}

		require.Zero(t, f.run(t, 5).Sent)
	})
}

func TestObligationWithoutAdminRecipients(t *testing.T) {
	f := newFixture(" ", "")
	f.obligations.items = []DueObligation{obligation(3, 1, "90", "0")}

	sum := f.run(t, 1)
	require.Equal(t, 1, sum.MissingRecipient)
	require.Empty(t, f.ledger.keys())
	require.Equal(t, 1, f.logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRentalWithoutTenantEmailIsRetriedLater(t *testing.T) {
	f := newFixture("a@x.com")
	f.rentals.items = []EndingRental{rental(11, 1, "", "800", "0")}

	sum := f.run(t, 5, 1)
	require.Zero(t, sum.Sent)
	require.Equal(t, 2, sum.MissingRecipient)
	require.Empty(t, f.notifier.sent)
	require.Empty(t, f.ledger.keys())
	warnings := f.logs.FilterLevelExact(zapcore.WarnLevel)
	require.Equal(t, 2, warnings.Len())
	require.Equal(t, "tenant has no email, rental ending alert skipped", warnings.All()[0].Message)

	f.rentals.items[0].TenantEmail = "rosa@example.com"
	sum = f.run(t, 5, 1)
	require.Equal(t, 2, sum.Sent)
	require.Equal(t, []string{"rental:11/1_day", "rental:11/payment_1_day"}, f.ledger.keys())
}

func TestPaymentReminderOnlyWhenBalanceOutstanding(t *testing.T) {
	f := newFixture()
	f.rentals.items = []EndingRental{
		rental(1, 5, "paid@example.com", "1000", "1000"),
		rental(2, 5, "owes@example.com", "1000", "999.99"),
	}

	sum := f.run(t, 5)
	require.Equal(t, 3, sum.Sent)
	require.Equal(t, 1, sum.FullyPaid)
	require.Equal(t, []string{
		"rental:1/5_days",
		"rental:2/5_days",
		"rental:2/payment_5_days",
	}, f.ledger.keys())
	require.Equal(t, "Payment reminder for Casa Norte", f.notifier.sent[2].subject)
}

func TestSendFailureIsRetriedAndDoesNotAbort(t *testing.T) {
	f := newFixture("a@x.com")
	f.rentals.items = []EndingRental{
		rental(1, 1, "down@example.com", "500", "500"),
		rental(2, 1, "ok@example.com", "500", "500"),
	}
	f.notifier.failTo["down@example.com"] = errors.New("smtp: connection refused")

	sum := f.run(t, 1)
	require.Equal(t, 1, sum.Failed)
	require.Equal(t, 1, sum.Sent)
	require.Len(t, sum.Failures, 1)
	require.Equal(t, RentalRef(1), sum.Failures[0].Entity)
	require.Equal(t, []string{"rental:2/1_day"}, f.ledger.keys())

	delete(f.notifier.failTo, "down@example.com")
	sum = f.run(t, 1)
	require.Equal(t, 1, sum.Sent)
	require.Equal(t, 1, sum.AlreadySent)
	require.Equal(t, []string{"rental:1/1_day", "rental:2/1_day"}, f.ledger.keys())
}

func TestPartialRecipientFailureLeavesObligationUnrecorded(t *testing.T) {
	f := newFixture("a@x.com", "b@x.com")
	f.obligations.items = []DueObligation{obligation(4, 5, "10", "0")}
	f.notifier.failTo["b@x.com"] = errors.New("mailbox unavailable")

	sum := f.run(t, 5)
	require.Equal(t, 1, sum.Failed)
	require.Empty(t, f.ledger.keys())
}

func TestConcurrentRecordIsTreatedAsHandled(t *testing.T) {
	f := newFixture("a@x.com")
	f.obligations.items = []DueObligation{obligation(9, 5, "10", "0")}
	f.ledger.createErr = ErrAlreadyRecorded

	sum := f.run(t, 5)
	require.Zero(t, sum.Failed)
	require.Equal(t, 1, sum.Duplicates)
}

func TestSourceErrorDoesNotStopOtherCategories(t *testing.T) {
	f := newFixture("a@x.com")
	f.obligations.err = errors.New("connection reset")
	f.rentals.items = []EndingRental{rental(5, 1, "t@example.com", "10", "10")}

	sum := f.run(t, 1)
	require.Equal(t, 1, sum.Failed)
	require.Equal(t, 1, sum.Sent)
}

func TestRunRejectsNegativeLeadDays(t *testing.T) {
	f := newFixture("a@x.com")
	_, err := f.engine.Run(context.Background(), today, []int{5, -1})
	require.Error(t, err)
}

type busyLocker struct{}

func (busyLocker) TryLock(context.Context) (func(), bool, error) { return nil, false, nil }

func TestRunSkipsWhenLocked(t *testing.T) {
	f := newFixture("a@x.com")
	f.obligations.items = []DueObligation{obligation(1, 5, "10", "0")}
	f.engine.WithLocker(busyLocker{})

	sum := f.run(t, 5)
	require.True(t, sum.Locked)
	require.Empty(t, f.notifier.sent)
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture("a@x.com", "b@x.com")
	f.obligations.items = []DueObligation{
		obligation(1, 5, "300", "0"),
		obligation(2, 1, "300", "100"),
		obligation(3, 1, "300", "300"),
	}
	f.rentals.items = []EndingRental{
		rental(1, 5, "one@example.com", "900", "0"),
		rental(2, 1, "two@example.com", "900", "900"),
		rental(3, 1, "", "900", "0"),
	}

	first := f.run(t, 5, 1)
	sends := len(f.notifier.sent)
	records := f.ledger.keys()

	second := f.run(t, 5, 1)
	require.Zero(t, second.Sent)
	require.Equal(t, sends, len(f.notifier.sent))
	require.Equal(t, records, f.ledger.keys())
	require.Equal(t, first.Sent, second.AlreadySent)
}

func TestFormatMoney(t *testing.T) {
	require.Equal(t, "500,000.00", FormatMoney(money("500000")))
	require.Equal(t, "0.01", FormatMoney(money("0.01")))
	require.Equal(t, "-1,234.50", FormatMoney(money("-1234.5")))
	require.Equal(t, "999.99", FormatMoney(money("999.99")))
}
