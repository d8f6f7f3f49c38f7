package service

import (
	"context"
	"testing"

	"barberpro/internal/models"
	"barberpro/internal/storage"
	"barberpro/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceComputeEmptyHistory(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	kv := storage.NewMemoryKV()
	appointments := store.NewAppointmentStore(kv, logger)
	products := store.NewProductStore(kv, logger)
	finance := NewFinanceService(appointments, products, logger)

	stats, err := finance.Compute(ctx)
	require.NoError(t, err)

	// Four seed products at the fixed simulated unit.
	assert.Equal(t, float64(0), stats.ServiceRevenue)
	assert.Equal(t, float64(180), stats.ProductRevenue)
	assert.Equal(t, float64(180), stats.Gross)
	assert.Equal(t, float64(0), stats.Commissions)
	assert.Equal(t, float64(36), stats.Expenses)
	assert.Equal(t, float64(144), stats.Net)
	assert.Equal(t, float64(0), stats.AvgTicket)
	assert.Equal(t, 0, stats.Appointments)
}

func TestFinanceComputeWithBookings(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	kv := storage.NewMemoryKV()
	appointments := store.NewAppointmentStore(kv, logger)
	products := store.NewProductStore(kv, logger)
	finance := NewFinanceService(appointments, products, logger)

	require.NoError(t, appointments.Append(ctx, models.Appointment{ID: "a1", Price: 60}))
	require.NoError(t, appointments.Append(ctx, models.Appointment{ID: "a2", Price: 85}))

	stats, err := finance.Compute(ctx)
	require.NoError(t, err)

	// serviceRevenue = 145, productRevenue = 4*45 = 180, gross = 325.
	assert.Equal(t, float64(145), stats.ServiceRevenue)
	assert.Equal(t, float64(325), stats.Gross)
	// commissions = round(145 * 0.40) = 58, expenses = round(325 * 0.20) = 65.
	assert.Equal(t, float64(58), stats.Commissions)
	assert.Equal(t, float64(65), stats.Expenses)
	assert.Equal(t, float64(202), stats.Net)
	// avgTicket = round(325 / 2) = 163.
	assert.Equal(t, float64(163), stats.AvgTicket)
	assert.Equal(t, 2, stats.Appointments)
}
