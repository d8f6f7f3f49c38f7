package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"barberpro/internal/models"
	"barberpro/internal/storage"

	"github.com/rs/zerolog"
)

var ErrNotFound = fmt.Errorf("store: record not found")

// Catalog collections. Each one is an independent blob keyed like the
// original front-end's storage; every mutation overwrites the whole
// collection (last writer wins, single writer per collection).

func loadCollection[T any](ctx context.Context, kv storage.KV, key string, seed func() []T, logger *zerolog.Logger) ([]T, error) {
	raw, ok, err := kv.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return seed(), nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("corrupted catalog blob, falling back to seed dataset")
		return seed(), nil
	}
	return records, nil
}

func saveCollection[T any](ctx context.Context, kv storage.KV, key string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Write(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// ServiceStore manages the service catalog.
type ServiceStore struct {
	kv     storage.KV
	logger *zerolog.Logger
	mu     sync.Mutex
}

func NewServiceStore(kv storage.KV, logger *zerolog.Logger) *ServiceStore {
	return &ServiceStore{kv: kv, logger: logger}
}

func (s *ServiceStore) List(ctx context.Context) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection(ctx, s.kv, models.KeyServices, SeedServices, s.logger)
}

func (s *ServiceStore) ListActive(ctx context.Context) ([]models.Service, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Service, 0, len(all))
	for _, svc := range all {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *ServiceStore) GetByID(ctx context.Context, id string) (*models.Service, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, svc := range all {
		if svc.ID == id {
			return &svc, nil
		}
	}
	return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
}

func (s *ServiceStore) Create(ctx context.Context, svc models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyServices, SeedServices, s.logger)
	if err != nil {
		return err
	}
	return saveCollection(ctx, s.kv, models.KeyServices, append(all, svc))
}

func (s *ServiceStore) Update(ctx context.Context, svc models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyServices, SeedServices, s.logger)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == svc.ID {
			all[i] = svc
			return saveCollection(ctx, s.kv, models.KeyServices, all)
		}
	}
	return fmt.Errorf("service %s: %w", svc.ID, ErrNotFound)
}

func (s *ServiceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyServices, SeedServices, s.logger)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all = append(all[:i], all[i+1:]...)
			return saveCollection(ctx, s.kv, models.KeyServices, all)
		}
	}
	return fmt.Errorf("service %s: %w", id, ErrNotFound)
}

// ProductStore manages the product catalog.
type ProductStore struct {
	kv     storage.KV
	logger *zerolog.Logger
	mu     sync.Mutex
}

func NewProductStore(kv storage.KV, logger *zerolog.Logger) *ProductStore {
	return &ProductStore{kv: kv, logger: logger}
}

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection(ctx, s.kv, models.KeyProducts, SeedProducts, s.logger)
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

func (s *ProductStore) Create(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyProducts, SeedProducts, s.logger)
	if err != nil {
		return err
	}
	return saveCollection(ctx, s.kv, models.KeyProducts, append(all, p))
}

func (s *ProductStore) Update(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyProducts, SeedProducts, s.logger)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == p.ID {
			all[i] = p
			return saveCollection(ctx, s.kv, models.KeyProducts, all)
		}
	}
	return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyProducts, SeedProducts, s.logger)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all = append(all[:i], all[i+1:]...)
			return saveCollection(ctx, s.kv, models.KeyProducts, all)
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// StaffStore manages the barber roster.
type StaffStore struct {
	kv     storage.KV
	logger *zerolog.Logger
	mu     sync.Mutex
}

func NewStaffStore(kv storage.KV, logger *zerolog.Logger) *StaffStore {
	return &StaffStore{kv: kv, logger: logger}
}

func (s *StaffStore) List(ctx context.Context) ([]models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection(ctx, s.kv, models.KeyStaff, SeedStaff, s.logger)
}

// Search filters the roster by case-insensitive name substring.
func (s *StaffStore) Search(ctx context.Context, query string) ([]models.Barber, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}
	q := strings.ToLower(query)
	out := make([]models.Barber, 0, len(all))
	for _, b := range all {
		if strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *StaffStore) GetByID(ctx context.Context, id string) (*models.Barber, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("barber %s: %w", id, ErrNotFound)
}

func (s *StaffStore) Create(ctx context.Context, b models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyStaff, SeedStaff, s.logger)
	if err != nil {
		return err
	}
	return saveCollection(ctx, s.kv, models.KeyStaff, append(all, b))
}

func (s *StaffStore) Update(ctx context.Context, b models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyStaff, SeedStaff, s.logger)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == b.ID {
			all[i] = b
			return saveCollection(ctx, s.kv, models.KeyStaff, all)
		}
	}
	return fmt.Errorf("barber %s: %w", b.ID, ErrNotFound)
}

func (s *StaffStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := loadCollection(ctx, s.kv, models.KeyStaff, SeedStaff, s.logger)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all = append(all[:i], all[i+1:]...)
			return saveCollection(ctx, s.kv, models.KeyStaff, all)
		}
	}
	return fmt.Errorf("barber %s: %w", id, ErrNotFound)
}
