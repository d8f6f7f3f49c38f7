package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"barberpro/internal/models"
	"barberpro/internal/storage"

	"github.com/rs/zerolog"
)

// AppointmentStore is the append-only appointment collection, mirrored
// to the blob store on every mutation. Ordering is newest-first: a new
// entry appears before all previously existing ones in any later read.
type AppointmentStore struct {
	kv     storage.KV
	logger *zerolog.Logger

	mu     sync.Mutex
	cache  []models.Appointment
	loaded bool
}

func NewAppointmentStore(kv storage.KV, logger *zerolog.Logger) *AppointmentStore {
	return &AppointmentStore{
		kv:     kv,
		logger: logger,
	}
}

// Append prepends one appointment and persists the whole collection in a
// single write, so a reader never observes a partially written list.
func (s *AppointmentStore) Append(ctx context.Context, apt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	next := make([]models.Appointment, 0, len(s.cache)+1)
	next = append(next, apt)
	next = append(next, s.cache...)

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}
	if err := s.kv.Write(ctx, models.KeyAppointments, string(data)); err != nil {
		return fmt.Errorf("persist appointments: %w", err)
	}

	s.cache = next
	return nil
}

// LoadAll returns the collection in newest-first order. First run (no
// prior data) yields an empty slice.
func (s *AppointmentStore) LoadAll(ctx context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	out := make([]models.Appointment, len(s.cache))
	copy(out, s.cache)
	return out, nil
}

// FilterByClient returns the subset belonging to clientID, preserving
// newest-first order.
func (s *AppointmentStore) FilterByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	out := make([]models.Appointment, 0)
	for _, apt := range s.cache {
		if apt.ClientID == clientID {
			out = append(out, apt)
		}
	}
	return out, nil
}

// load populates the cache once. A corrupted payload fails closed: the
// store starts from the empty seed collection instead of crashing.
func (s *AppointmentStore) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, ok, err := s.kv.Read(ctx, models.KeyAppointments)
	if err != nil {
		return fmt.Errorf("read appointments: %w", err)
	}
	if !ok {
		s.cache = []models.Appointment{}
		s.loaded = true
		return nil
	}

	var apts []models.Appointment
	if err := json.Unmarshal([]byte(raw), &apts); err != nil {
		s.logger.Warn().Err(err).Str("key", models.KeyAppointments).Msg("corrupted appointment blob, starting from empty collection")
		apts = []models.Appointment{}
	}

	s.cache = apts
	s.loaded = true
	return nil
}
