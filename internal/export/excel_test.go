package export

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"barberpro/internal/models"
	"barberpro/internal/storage"
	"barberpro/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLedgerExport(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	appointments := store.NewAppointmentStore(storage.NewMemoryKV(), &logger)

	require.NoError(t, appointments.Append(ctx, models.Appointment{
		ID:          "a1",
		ClientName:  "Rafael",
		BarberName:  "Leo Fade",
		ServiceName: "Barba Imperial",
		Date:        "12 de Maio",
		Time:        "14:00",
		Status:      models.StatusConfirmed,
		Price:       60,
		CreatedAt:   time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, appointments.Append(ctx, models.Appointment{
		ID:          "a2",
		ClientName:  "Bruno",
		BarberName:  `Marco "A Lâmina"`,
		ServiceName: "Corte Mestre",
		Date:        "15 de Maio",
		Time:        "09:00",
		Status:      models.StatusConfirmed,
		Price:       85,
		CreatedAt:   time.Date(2026, 5, 13, 11, 0, 0, 0, time.UTC),
	}))

	path := filepath.Join(t.TempDir(), "ledger", "appointments.xlsx")
	exporter := NewLedgerExporter(appointments, path, &logger)

	got, err := exporter.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Sheet1")

	rows, err := f.GetRows("Agendamentos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])

	// Newest appointment first, matching the stored order.
	assert.Equal(t, "a2", rows[1][0])
	assert.Equal(t, "Bruno", rows[1][1])
	assert.Equal(t, "a1", rows[2][0])
	assert.Equal(t, "Barba Imperial", rows[2][3])
	assert.Equal(t, "14:00", rows[2][5])
}

func TestLedgerExportEmptyHistory(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	appointments := store.NewAppointmentStore(storage.NewMemoryKV(), &logger)

	path := filepath.Join(t.TempDir(), "appointments.xlsx")
	exporter := NewLedgerExporter(appointments, path, &logger)

	_, err := exporter.Export(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Agendamentos")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
