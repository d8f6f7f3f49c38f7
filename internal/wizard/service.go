package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"barberpro/internal/domain"
	"barberpro/internal/events"
	"barberpro/internal/metrics"
	"barberpro/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service drives the booking wizard: a linear, session-scoped state
// machine (barber → date → time → service → confirm → done). Selections
// are snapshotted into the session at pick time; the final confirmation
// appends exactly one fully denormalized appointment.
type Service struct {
	sessions     domain.SessionRepository
	staff        domain.StaffRoster
	services     domain.ServiceCatalog
	appointments domain.AppointmentRepository
	eventBus     domain.EventPublisher
	logger       *zerolog.Logger

	// confirmLocks serializes Confirm per session so a double submit
	// can never append twice.
	confirmLocks sync.Map
}

func New(
	sessions domain.SessionRepository,
	staff domain.StaffRoster,
	services domain.ServiceCatalog,
	appointments domain.AppointmentRepository,
	eventBus domain.EventPublisher,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		sessions:     sessions,
		staff:        staff,
		services:     services,
		appointments: appointments,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Start opens a new session at the barber selection step. Client
// identity is copied in from the active session, not referenced.
func (s *Service) Start(ctx context.Context, client models.User) (*models.WizardState, error) {
	state := &models.WizardState{
		SessionID:  uuid.NewString(),
		ClientID:   client.ID,
		ClientName: client.Name,
		Step:       models.StepSelectBarber,
		StartedAt:  time.Now(),
	}
	if err := s.sessions.SetSession(ctx, state); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return state, nil
}

// Get returns the current session state.
func (s *Service) Get(ctx context.Context, sessionID string) (*models.WizardState, error) {
	state, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}
	return state, nil
}

// Barbers lists the selectable roster, optionally filtered by a
// case-insensitive name substring.
func (s *Service) Barbers(ctx context.Context, query string) ([]models.Barber, error) {
	return s.staff.Search(ctx, query)
}

// Services lists the active service catalog offered at step 4.
func (s *Service) Services(ctx context.Context) ([]models.Service, error) {
	return s.services.ListActive(ctx)
}

// SelectBarber snapshots the chosen barber and advances to date
// selection.
func (s *Service) SelectBarber(ctx context.Context, sessionID, barberID string) (*models.WizardState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step != models.StepSelectBarber {
		return nil, ErrWrongStep
	}

	barber, err := s.staff.GetByID(ctx, barberID)
	if err != nil {
		return nil, err
	}

	state.BarberID = barber.ID
	state.BarberName = barber.Name
	state.Step = models.StepSelectDate
	if err := s.sessions.SetSession(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

// SelectDay picks a day from the fixed 30-slot calendar and advances to
// time selection.
func (s *Service) SelectDay(ctx context.Context, sessionID string, day int) (*models.WizardState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step != models.StepSelectDate {
		return nil, ErrWrongStep
	}
	if day < 1 || day > models.DaysInMonth {
		return nil, ErrInvalidDay
	}

	state.Day = day
	state.Step = models.StepSelectTime
	if err := s.sessions.SetSession(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

// SelectTime picks one of the fixed slots and advances to service
// selection. No collision check against existing appointments is made.
func (s *Service) SelectTime(ctx context.Context, sessionID, slot string) (*models.WizardState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step != models.StepSelectTime {
		return nil, ErrWrongStep
	}
	if !models.ValidTimeSlot(slot) {
		return nil, ErrInvalidTimeSlot
	}

	state.TimeSlot = slot
	state.Step = models.StepSelectService
	if err := s.sessions.SetSession(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

// SelectService snapshots the chosen service, including its price, and
// advances to the review step. Later catalog edits cannot change it.
func (s *Service) SelectService(ctx context.Context, sessionID, serviceID string) (*models.WizardState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step != models.StepSelectService {
		return nil, ErrWrongStep
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	state.ServiceID = svc.ID
	state.ServiceName = svc.Name
	state.ServicePrice = svc.Price
	state.Step = models.StepConfirm
	if err := s.sessions.SetSession(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

// Confirm finishes the flow: it validates that every selection is set,
// builds the denormalized appointment and appends it exactly once. The
// session reaches the terminal step only after the append succeeds; on
// failure it stays at the review step and can be retried.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*models.Appointment, error) {
	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step == models.StepDone {
		return nil, ErrAlreadyConfirmed
	}
	if state.Step != models.StepConfirm {
		return nil, ErrWrongStep
	}
	if !state.Complete() {
		return nil, ErrSelectionMissing
	}

	apt := models.Appointment{
		ID:          uuid.NewString(),
		ClientID:    state.ClientID,
		ClientName:  state.ClientName,
		BarberID:    state.BarberID,
		BarberName:  state.BarberName,
		ServiceID:   state.ServiceID,
		ServiceName: state.ServiceName,
		Date:        FormatDay(state.Day),
		Time:        state.TimeSlot,
		Status:      models.StatusConfirmed,
		Price:       state.ServicePrice,
		CreatedAt:   time.Now(),
	}

	if err := s.appointments.Append(ctx, apt); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("appointment append failed, session stays at review step")
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	state.Step = models.StepDone
	if err := s.sessions.SetSession(ctx, state); err != nil {
		// The appointment is already durable; a stale session only
		// risks a duplicate, and the step guard rejects that.
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to advance session to done")
	}

	s.publishCreated(apt)
	metrics.IncBookingConfirmed()
	s.logger.Info().
		Str("appointment_id", apt.ID).
		Str("client_id", apt.ClientID).
		Str("barber", apt.BarberName).
		Str("service", apt.ServiceName).
		Msg("booking confirmed")

	return &apt, nil
}

// Abandon drops an unfinished session. Nothing partial is persisted.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	s.confirmLocks.Delete(sessionID)
	return s.sessions.ClearSession(ctx, sessionID)
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	v, _ := s.confirmLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *Service) publishCreated(apt models.Appointment) {
	if s.eventBus == nil {
		return
	}

	payload := events.AppointmentEventPayload{
		AppointmentID: apt.ID,
		ClientID:      apt.ClientID,
		ClientName:    apt.ClientName,
		BarberID:      apt.BarberID,
		BarberName:    apt.BarberName,
		ServiceID:     apt.ServiceID,
		ServiceName:   apt.ServiceName,
		Date:          apt.Date,
		Time:          apt.Time,
		Status:        apt.Status,
		Price:         apt.Price,
		CreatedAt:     apt.CreatedAt,
	}

	if err := s.eventBus.PublishJSON(events.EventAppointmentCreated, payload); err != nil {
		s.logger.Error().Err(err).Str("appointment_id", apt.ID).Msg("publish event error")
	}
}

// FormatDay renders the picked day the way bookings are displayed.
func FormatDay(day int) string {
	return fmt.Sprintf("%d de Maio", day)
}
