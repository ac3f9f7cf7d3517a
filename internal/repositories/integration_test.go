//go:build testutil

package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-backend/internal/alerts"
	"property-backend/internal/models"
	"property-backend/internal/testutil/testdb"
)

var handle *testdb.DBHandle

func TestMain(m *testing.M) {
	var err error
	handle, err = testdb.Start(context.Background())
	if err != nil {
		panic(err)
	}
	code := m.Run()
	handle.Close()
	os.Exit(code)
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func seedProperty(t *testing.T, ctx context.Context, name string) *models.Property {
	t.Helper()
	p := &models.Property{Name: name}
	require.NoError(t, NewPropertyRepository(handle.Pool).Create(ctx, p))
	return p
}

func seedTenant(t *testing.T, ctx context.Context, email string) *models.Tenant {
	t.Helper()
	tn := &models.Tenant{Name: "Ana", LastName: "Ruiz", Email: email}
	require.NoError(t, NewTenantRepository(handle.Pool).Create(ctx, tn))
	return tn
}

func TestAlertLedgerUniqueness(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, handle.Reset(ctx))
	ledger := NewAlertLedgerRepository(handle.Pool)

	rec := alerts.Record{Entity: alerts.ObligationRef(7), Kind: "5_days", Recipient: "a@x.com", SentAt: time.Now()}
	require.NoError(t, ledger.Create(ctx, rec))

	err := ledger.Create(ctx, rec)
	assert.True(t, errors.Is(err, alerts.ErrAlreadyRecorded), "got %v", err)

	// same id, other entity kind is a different key
	require.NoError(t, ledger.Create(ctx, alerts.Record{Entity: alerts.RentalRef(7), Kind: "5_days", Recipient: "t@x.com", SentAt: time.Now()}))

	ok, err := ledger.Exists(ctx, alerts.ObligationRef(7), "5_days")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ledger.Exists(ctx, alerts.ObligationRef(7), "1_day")
	require.NoError(t, err)
	assert.False(t, ok)

	items, total, err := ledger.List(ctx, "rental", ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].EntityID)
}

func TestExclusionConstraintRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, handle.Reset(ctx))
	p := seedProperty(t, ctx, "Apt 1")
	tn := seedTenant(t, ctx, "ana@example.com")
	repo := NewRentalRepository(handle.Pool)

	in, out := day(2026, 11, 1), day(2026, 11, 10)
	first := &models.Rental{PropertyID: p.ID, TenantID: &tn.ID, RentalType: "daily", CheckIn: &in, CheckOut: &out, Status: "occupied", PeopleCount: 1}
	require.NoError(t, repo.Create(ctx, handle.Pool, first))

	in2, out2 := day(2026, 11, 9), day(2026, 11, 12)
	second := &models.Rental{PropertyID: p.ID, TenantID: &tn.ID, RentalType: "daily", CheckIn: &in2, CheckOut: &out2, Status: "occupied", PeopleCount: 1}
	err := repo.Create(ctx, handle.Pool, second)
	assert.True(t, IsExclusionViolation(err), "got %v", err)

	// back-to-back stays share the boundary day
	in3, out3 := day(2026, 11, 10), day(2026, 11, 12)
	third := &models.Rental{PropertyID: p.ID, TenantID: &tn.ID, RentalType: "daily", CheckIn: &in3, CheckOut: &out3, Status: "occupied", PeopleCount: 1}
	require.NoError(t, repo.Create(ctx, handle.Pool, third))
}

func TestAlertSourcesSumPayments(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, handle.Reset(ctx))
	p := seedProperty(t, ctx, "House")
	tn := seedTenant(t, ctx, "ana@example.com")
	payments := NewPaymentRepository(handle.Pool)
	methods, err := payments.ListPaymentMethods(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, methods)

	due := day(2026, 10, 22)
	obligations := NewObligationRepository(handle.Pool)
	o := &models.Obligation{PropertyID: p.ID, ObligationType: "tax", EntityName: "City", Amount: decimal.NewFromInt(500000), DueDate: due, Temporality: "annual"}
	require.NoError(t, obligations.Create(ctx, o))
	for _, amt := range []string{"200000", "100000.50"} {
		require.NoError(t, payments.CreateObligationPayment(ctx, &models.ObligationPayment{
			ObligationID: o.ID, PaymentMethodID: methods[0].ID, Amount: decimal.RequireFromString(amt), PaymentDate: due,
		}))
	}

	got, err := obligations.ObligationsDueOn(ctx, due)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "300000.5", got[0].Paid.String())
	assert.False(t, got[0].FullyPaid())

	rentals := NewRentalRepository(handle.Pool)
	in, out := day(2026, 10, 1), due
	r := &models.Rental{PropertyID: p.ID, TenantID: &tn.ID, RentalType: "monthly", CheckIn: &in, CheckOut: &out, Amount: decimal.NewFromInt(1200), Status: "occupied", PeopleCount: 1}
	require.NoError(t, rentals.Create(ctx, handle.Pool, r))
	require.NoError(t, payments.CreateRentalPayment(ctx, &models.RentalPayment{
		RentalID: r.ID, PaymentMethodID: methods[0].ID, PaymentDate: in, Amount: decimal.NewFromInt(1200),
	}))

	ending, err := rentals.OccupiedRentalsEndingOn(ctx, due)
	require.NoError(t, err)
	require.Len(t, ending, 1)
	assert.Equal(t, "ana@example.com", ending[0].TenantEmail)
	assert.True(t, ending[0].FullyPaid())

	// soft-deleted properties drop out of the sweep
	require.NoError(t, NewPropertyRepository(handle.Pool).SoftDelete(ctx, p.ID))
	ending, err = rentals.OccupiedRentalsEndingOn(ctx, due)
	require.NoError(t, err)
	assert.Empty(t, ending)
}

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, handle.Reset(ctx))
	users := NewUserRepository(handle.Pool)

	require.NoError(t, users.Create(ctx, &models.User{Name: "A", Email: "Admin@Example.com", PasswordHash: "x", Role: "admin", IsActive: true}))
	err := users.Create(ctx, &models.User{Name: "B", Email: "admin@example.com", PasswordHash: "x", Role: "admin", IsActive: true})
	assert.ErrorIs(t, err, ErrDuplicate)

	u, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
}
