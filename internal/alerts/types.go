package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrAlreadyRecorded is returned by a Ledger when (entity, kind) already has a record.
var ErrAlreadyRecorded = errors.New("alert already recorded")

type EntityKind string

const (
	EntityObligation EntityKind = "obligation"
	EntityRental     EntityKind = "rental"
)

// EntityRef identifies the entity an alert is about: an obligation or a rental period.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   int        `json:"id"`
}

func ObligationRef(id int) EntityRef { return EntityRef{Kind: EntityObligation, ID: id} }
func RentalRef(id int) EntityRef     { return EntityRef{Kind: EntityRental, ID: id} }

func (r EntityRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// Valid reports whether Kind is one of the known variants.
func (r EntityRef) Valid() bool {
	return (r.Kind == EntityObligation || r.Kind == EntityRental) && r.ID > 0
}

const paymentPrefix = "payment_"

// KindFor names the alert kind for a lead time in days.
func KindFor(days int) string {
	switch days {
	case 0:
		return "same_day"
	case 1:
		return "1_day"
	default:
		return fmt.Sprintf("%d_days", days)
	}
}

// PaymentKind derives the payment reminder kind from a due alert kind.
func PaymentKind(kind string) string {
	return paymentPrefix + kind
}

// DueObligation is an obligation falling due on the sweep's target date, with its paid total.
type DueObligation struct {
	ID           int
	EntityName   string
	PropertyName string
	Temporality  string
	Amount       decimal.Decimal
	Paid         decimal.Decimal
	DueDate      time.Time
}

func (o DueObligation) FullyPaid() bool {
	return o.Paid.GreaterThanOrEqual(o.Amount)
}

func (o DueObligation) Remaining() decimal.Decimal {
	return o.Amount.Sub(o.Paid)
}

// EndingRental is an occupied rental whose check-out falls on the sweep's target date.
// TenantEmail is empty when the tenant has no address on file.
type EndingRental struct {
	ID           int
	PropertyName string
	RentalType   string
	TenantName   string
	TenantEmail  string
	CheckIn      time.Time
	CheckOut     time.Time
	Amount       decimal.Decimal
	Paid         decimal.Decimal
}

func (r EndingRental) FullyPaid() bool {
	return r.Paid.GreaterThanOrEqual(r.Amount)
}

func (r EndingRental) Remaining() decimal.Decimal {
	return r.Amount.Sub(r.Paid)
}

// Record is one ledger entry: proof that kind was sent for Entity.
type Record struct {
	ID        int
	Entity    EntityRef
	Kind      string
	Recipient string
	SentAt    time.Time
}

type ObligationSource interface {
	ObligationsDueOn(ctx context.Context, date time.Time) ([]DueObligation, error)
}

type RentalSource interface {
	OccupiedRentalsEndingOn(ctx context.Context, date time.Time) ([]EndingRental, error)
}

// Ledger is the append-only alert store. Create must return ErrAlreadyRecorded
// when the unique (entity, kind) constraint rejects the insert.
type Ledger interface {
	Exists(ctx context.Context, ref EntityRef, kind string) (bool, error)
	Create(ctx context.Context, rec Record) error
}

type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Locker serializes sweeps across processes. ok is false when another sweep holds the lock.
type Locker interface {
	TryLock(ctx context.Context) (release func(), ok bool, err error)
}
