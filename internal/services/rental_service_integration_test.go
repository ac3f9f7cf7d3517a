//go:build testutil

package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"property-backend/internal/booking"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
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

type fixture struct {
	svc      *RentalService
	property *models.Property
	tenant   *models.Tenant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, handle.Reset(ctx))

	properties := repositories.NewPropertyRepository(handle.Pool)
	p := &models.Property{Name: "Apt 3B"}
	require.NoError(t, properties.Create(ctx, p))
	tn := &models.Tenant{Name: "Luis", LastName: "Gómez", Email: "luis@example.com"}
	require.NoError(t, repositories.NewTenantRepository(handle.Pool).Create(ctx, tn))

	svc := NewRentalService(handle.Pool, repositories.NewRentalRepository(handle.Pool), properties,
		booking.NewGuard(booking.Policy{}), zap.NewNop())
	return &fixture{svc: svc, property: p, tenant: tn}
}

func (f *fixture) occupied(in, out string) *models.RentalRequest {
	return &models.RentalRequest{
		PropertyID: f.property.ID,
		TenantID:   &f.tenant.ID,
		RentalType: models.RentalTypeDaily,
		CheckIn:    in,
		CheckOut:   out,
		Amount:     decimal.NewFromInt(900),
		Status:     string(booking.StatusOccupied),
	}
}

func TestCreateRejectsOverlapWithConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.occupied("2026-11-01", "2026-11-10"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.occupied("2026-11-05", "2026-11-15"))
	var v *booking.Violation
	require.True(t, errors.As(err, &v), "got %v", err)
	assert.Equal(t, booking.OverlappingBooking, v.Kind)
	require.NotNil(t, v.Conflict)
	assert.Equal(t, first.ID, v.Conflict.ID)
	assert.Equal(t, "Luis Gómez", v.Conflict.TenantName)

	_, err = f.svc.Create(ctx, f.occupied("2026-11-10", "2026-11-12"))
	assert.NoError(t, err, "check-out day is free for the next check-in")
}

func TestUpdateIgnoresItsOwnPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.occupied("2026-11-01", "2026-11-10"))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, r.ID, f.occupied("2026-11-02", "2026-11-12"))
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOut)
	assert.Equal(t, "2026-11-12", updated.CheckOut.Format("2006-01-02"))
}

func TestInvalidWritesLeaveNoRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.occupied("2026-11-10", "2026-11-01"))
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

	req := f.occupied("2026-11-01", "2026-11-10")
	req.Status = string(booking.StatusAvailable)
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, booking.ErrInconsistentStatus)

	_, total, err := f.svc.List(ctx, models.RentalFilter{PropertyID: f.property.ID}, repositories.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestConcurrentOverlappingCreatesAdmitOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(ctx, f.occupied("2026-12-01", "2026-12-20"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, booking.ErrOverlappingBooking)
	}
	assert.Equal(t, 1, ok)
}

func TestGetForTenantHidesOtherTenants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.occupied("2026-11-01", "2026-11-10"))
	require.NoError(t, err)

	_, err = f.svc.GetForTenant(ctx, f.tenant.ID, r.ID)
	require.NoError(t, err)
	_, err = f.svc.GetForTenant(ctx, f.tenant.ID+100, r.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
