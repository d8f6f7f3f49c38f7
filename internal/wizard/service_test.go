package wizard

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"barberpro/internal/events"
	"barberpro/internal/models"
	"barberpro/internal/repository"
	"barberpro/internal/storage"
	"barberpro/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	wizard       *Service
	appointments *store.AppointmentStore
	services     *store.ServiceStore
	staff        *store.StaffStore
	bus          *events.EventBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.New(io.Discard)
	kv := storage.NewMemoryKV()

	appointments := store.NewAppointmentStore(kv, &logger)
	services := store.NewServiceStore(kv, &logger)
	staff := store.NewStaffStore(kv, &logger)
	sessions := repository.NewMemorySessionRepository(time.Minute)
	bus := events.NewEventBus()

	return &fixture{
		wizard:       New(sessions, staff, services, appointments, bus, &logger),
		appointments: appointments,
		services:     services,
		staff:        staff,
		bus:          bus,
	}
}

func client() models.User {
	return models.User{ID: "c1", Name: "Rafael", Role: models.RoleClient}
}

func (f *fixture) completeFlow(t *testing.T, ctx context.Context) *models.WizardState {
	t.Helper()
	state, err := f.wizard.Start(ctx, client())
	require.NoError(t, err)

	_, err = f.wizard.SelectBarber(ctx, state.SessionID, "b2")
	require.NoError(t, err)
	_, err = f.wizard.SelectDay(ctx, state.SessionID, 12)
	require.NoError(t, err)
	_, err = f.wizard.SelectTime(ctx, state.SessionID, "14:00")
	require.NoError(t, err)
	state, err = f.wizard.SelectService(ctx, state.SessionID, "2")
	require.NoError(t, err)
	return state
}

func TestWizardFullBookingFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var published []events.AppointmentEventPayload
	f.bus.Subscribe(events.EventAppointmentCreated, func(ev *events.Event) error {
		var p events.AppointmentEventPayload
		require.NoError(t, json.Unmarshal(ev.Payload, &p))
		published = append(published, p)
		return nil
	})

	// History starts empty.
	apts, err := f.appointments.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, apts)

	state, err := f.wizard.Start(ctx, client())
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectBarber, state.Step)
	assert.Equal(t, "c1", state.ClientID)

	barbers, err := f.wizard.Barbers(ctx, "")
	require.NoError(t, err)
	require.Len(t, barbers, 2)

	state, err = f.wizard.SelectBarber(ctx, state.SessionID, "b2")
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectDate, state.Step)
	assert.Equal(t, "Leo Fade", state.BarberName)

	state, err = f.wizard.SelectDay(ctx, state.SessionID, 12)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectTime, state.Step)

	state, err = f.wizard.SelectTime(ctx, state.SessionID, "14:00")
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectService, state.Step)

	state, err = f.wizard.SelectService(ctx, state.SessionID, "2")
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirm, state.Step)
	assert.Equal(t, "Barba Imperial", state.ServiceName)
	assert.Equal(t, float64(60), state.ServicePrice)

	apt, err := f.wizard.Confirm(ctx, state.SessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, apt.ID)
	assert.Equal(t, "c1", apt.ClientID)
	assert.Equal(t, "Rafael", apt.ClientName)
	assert.Equal(t, "Leo Fade", apt.BarberName)
	assert.Equal(t, "Barba Imperial", apt.ServiceName)
	assert.Equal(t, "12 de Maio", apt.Date)
	assert.Equal(t, "14:00", apt.Time)
	assert.Equal(t, models.StatusConfirmed, apt.Status)
	assert.Equal(t, float64(60), apt.Price)

	apts, err = f.appointments.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, apts, 1)
	assert.Equal(t, apt.ID, apts[0].ID)

	// Session ends at the terminal step.
	final, err := f.wizard.Get(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepDone, final.Step)

	require.Len(t, published, 1)
	assert.Equal(t, apt.ID, published[0].AppointmentID)
}

func TestWizardTwoBookingsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.completeFlow(t, ctx)
	aptFirst, err := f.wizard.Confirm(ctx, first.SessionID)
	require.NoError(t, err)

	second, err := f.wizard.Start(ctx, client())
	require.NoError(t, err)
	_, err = f.wizard.SelectBarber(ctx, second.SessionID, "b1")
	require.NoError(t, err)
	_, err = f.wizard.SelectDay(ctx, second.SessionID, 20)
	require.NoError(t, err)
	_, err = f.wizard.SelectTime(ctx, second.SessionID, "09:00")
	require.NoError(t, err)
	_, err = f.wizard.SelectService(ctx, second.SessionID, "3")
	require.NoError(t, err)
	aptSecond, err := f.wizard.Confirm(ctx, second.SessionID)
	require.NoError(t, err)

	apts, err := f.appointments.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, apts, 2)
	assert.Equal(t, aptSecond.ID, apts[0].ID)
	assert.Equal(t, aptFirst.ID, apts[1].ID)
}

func TestWizardStepOrderEnforced(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	state, err := f.wizard.Start(ctx, client())
	require.NoError(t, err)

	_, err = f.wizard.SelectDay(ctx, state.SessionID, 12)
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = f.wizard.SelectTime(ctx, state.SessionID, "14:00")
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = f.wizard.SelectService(ctx, state.SessionID, "2")
	assert.ErrorIs(t, err, ErrWrongStep)
	_, err = f.wizard.Confirm(ctx, state.SessionID)
	assert.ErrorIs(t, err, ErrWrongStep)

	// Repeating a finished step is also rejected.
	_, err = f.wizard.SelectBarber(ctx, state.SessionID, "b2")
	require.NoError(t, err)
	_, err = f.wizard.SelectBarber(ctx, state.SessionID, "b1")
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestWizardInvalidSelections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	state, err := f.wizard.Start(ctx, client())
	require.NoError(t, err)

	t.Run("UnknownBarber", func(t *testing.T) {
		_, err := f.wizard.SelectBarber(ctx, state.SessionID, "ghost")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	_, err = f.wizard.SelectBarber(ctx, state.SessionID, "b2")
	require.NoError(t, err)

	t.Run("DayOutOfRange", func(t *testing.T) {
		_, err := f.wizard.SelectDay(ctx, state.SessionID, 0)
		assert.ErrorIs(t, err, ErrInvalidDay)
		_, err = f.wizard.SelectDay(ctx, state.SessionID, 31)
		assert.ErrorIs(t, err, ErrInvalidDay)
	})

	_, err = f.wizard.SelectDay(ctx, state.SessionID, 12)
	require.NoError(t, err)

	t.Run("SlotNotBookable", func(t *testing.T) {
		_, err := f.wizard.SelectTime(ctx, state.SessionID, "12:00")
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	_, err = f.wizard.SelectTime(ctx, state.SessionID, "14:00")
	require.NoError(t, err)

	t.Run("UnknownService", func(t *testing.T) {
		_, err := f.wizard.SelectService(ctx, state.SessionID, "ghost")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWizardDoubleConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	state := f.completeFlow(t, ctx)
	_, err := f.wizard.Confirm(ctx, state.SessionID)
	require.NoError(t, err)

	_, err = f.wizard.Confirm(ctx, state.SessionID)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	apts, err := f.appointments.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, apts, 1)
}

func TestWizardSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	state := f.completeFlow(t, ctx)

	// Catalog edits after selection must not leak into the booking.
	svc, err := f.services.GetByID(ctx, "2")
	require.NoError(t, err)
	svc.Name = "Barba Premium"
	svc.Price = 95
	require.NoError(t, f.services.Update(ctx, *svc))

	apt, err := f.wizard.Confirm(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Barba Imperial", apt.ServiceName)
	assert.Equal(t, float64(60), apt.Price)
}

func TestWizardAbandon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	state := f.completeFlow(t, ctx)
	require.NoError(t, f.wizard.Abandon(ctx, state.SessionID))

	_, err := f.wizard.Get(ctx, state.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Nothing partial was ever written.
	apts, err := f.appointments.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, apts)
}

func TestWizardSessionNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.wizard.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.wizard.Confirm(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardBarberSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	found, err := f.wizard.Barbers(ctx, "fade")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Leo Fade", found[0].Name)
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "1 de Maio", FormatDay(1))
	assert.Equal(t, "12 de Maio", FormatDay(12))
	assert.Equal(t, "30 de Maio", FormatDay(30))
}
