package service

import (
	"context"
	"errors"
	"fmt"

	"barberpro/internal/domain"
	"barberpro/internal/events"
	"barberpro/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrInvalidForm = errors.New("service: invalid form")

// Typed admin forms, one per entity kind. Each form carries its own
// validated field set instead of a shared untyped bag.

type ServiceForm struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Image           string  `json:"image"`
	IsCombo         bool    `json:"isCombo"`
	IsActive        *bool   `json:"isActive"`
}

func (f ServiceForm) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidForm)
	}
	if f.Price <= 0 {
		return fmt.Errorf("%w: service price must be positive", ErrInvalidForm)
	}
	if f.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive", ErrInvalidForm)
	}
	return nil
}

type ProductForm struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

func (f ProductForm) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidForm)
	}
	if f.Price <= 0 {
		return fmt.Errorf("%w: product price must be positive", ErrInvalidForm)
	}
	if f.Category == "" {
		return fmt.Errorf("%w: product category is required", ErrInvalidForm)
	}
	return nil
}

type BarberForm struct {
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio"`
	Status      string   `json:"status"`
}

func (f BarberForm) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: barber name is required", ErrInvalidForm)
	}
	switch f.Status {
	case "", models.BarberAvailable, models.BarberBusy, models.BarberAway:
	default:
		return fmt.Errorf("%w: unknown barber status %q", ErrInvalidForm, f.Status)
	}
	return nil
}

// AdminService applies validated catalog mutations. Historical
// appointments are denormalized snapshots, so none of these operations
// can corrupt them.
type AdminService struct {
	services domain.ServiceCatalog
	products domain.ProductCatalog
	staff    domain.StaffRoster
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewAdminService(
	services domain.ServiceCatalog,
	products domain.ProductCatalog,
	staff domain.StaffRoster,
	eventBus domain.EventPublisher,
	logger *zerolog.Logger,
) *AdminService {
	return &AdminService{
		services: services,
		products: products,
		staff:    staff,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *AdminService) CreateService(ctx context.Context, form ServiceForm) (*models.Service, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	svc := models.Service{
		ID:              uuid.NewString(),
		Name:            form.Name,
		Description:     form.Description,
		Price:           form.Price,
		DurationMinutes: form.DurationMinutes,
		Image:           form.Image,
		IsCombo:         form.IsCombo,
		IsActive:        true,
	}
	if form.IsActive != nil {
		svc.IsActive = *form.IsActive
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.catalogChanged("service", svc.ID, "created")
	return &svc, nil
}

func (s *AdminService) UpdateService(ctx context.Context, id string, form ServiceForm) (*models.Service, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	current, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = form.Name
	current.Description = form.Description
	current.Price = form.Price
	current.DurationMinutes = form.DurationMinutes
	current.Image = form.Image
	current.IsCombo = form.IsCombo
	if form.IsActive != nil {
		current.IsActive = *form.IsActive
	}

	if err := s.services.Update(ctx, *current); err != nil {
		return nil, err
	}
	s.catalogChanged("service", id, "updated")
	return current, nil
}

func (s *AdminService) DeleteService(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.catalogChanged("service", id, "deleted")
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	p := models.Product{
		ID:       uuid.NewString(),
		Name:     form.Name,
		Price:    form.Price,
		Image:    form.Image,
		Category: form.Category,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.catalogChanged("product", p.ID, "created")
	return &p, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, form ProductForm) (*models.Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = form.Name
	current.Price = form.Price
	current.Image = form.Image
	current.Category = form.Category

	if err := s.products.Update(ctx, *current); err != nil {
		return nil, err
	}
	s.catalogChanged("product", id, "updated")
	return current, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.catalogChanged("product", id, "deleted")
	return nil
}

func (s *AdminService) CreateBarber(ctx context.Context, form BarberForm) (*models.Barber, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	b := models.Barber{
		ID:          uuid.NewString(),
		Name:        form.Name,
		Avatar:      form.Avatar,
		Specialties: form.Specialties,
		Bio:         form.Bio,
		Status:      form.Status,
		Rating:      5.0,
	}
	// New hires default to available with the house specialties.
	if b.Status == "" {
		b.Status = models.BarberAvailable
	}
	if len(b.Specialties) == 0 {
		b.Specialties = []string{"Corte", "Barba"}
	}

	if err := s.staff.Create(ctx, b); err != nil {
		return nil, err
	}
	s.catalogChanged("barber", b.ID, "created")
	return &b, nil
}

func (s *AdminService) UpdateBarber(ctx context.Context, id string, form BarberForm) (*models.Barber, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	current, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = form.Name
	current.Avatar = form.Avatar
	current.Bio = form.Bio
	if form.Status != "" {
		current.Status = form.Status
	}
	if len(form.Specialties) > 0 {
		current.Specialties = form.Specialties
	}

	if err := s.staff.Update(ctx, *current); err != nil {
		return nil, err
	}
	s.catalogChanged("barber", id, "updated")
	return current, nil
}

func (s *AdminService) DeleteBarber(ctx context.Context, id string) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		return err
	}
	s.catalogChanged("barber", id, "deleted")
	return nil
}

func (s *AdminService) catalogChanged(kind, id, action string) {
	if s.eventBus == nil {
		return
	}
	payload := map[string]string{"kind": kind, "id": id, "action": action}
	if err := s.eventBus.PublishJSON(events.EventCatalogChanged, payload); err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Str("id", id).Msg("publish event error")
	}
}
