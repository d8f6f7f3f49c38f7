package domain

import (
	"context"

	"barberpro/internal/models"
)

// SessionRepository holds in-progress booking wizard sessions. Sessions
// are volatile: an abandoned one simply expires, nothing partial is ever
// written to the appointment collection.
type SessionRepository interface {
	GetSession(ctx context.Context, sessionID string) (*models.WizardState, error)
	SetSession(ctx context.Context, state *models.WizardState) error
	ClearSession(ctx context.Context, sessionID string) error
}

// AppointmentRepository is the append-only appointment collection.
type AppointmentRepository interface {
	Append(ctx context.Context, apt models.Appointment) error
	LoadAll(ctx context.Context) ([]models.Appointment, error)
	FilterByClient(ctx context.Context, clientID string) ([]models.Appointment, error)
}

// ServiceCatalog manages the mutable service collection.
type ServiceCatalog interface {
	List(ctx context.Context) ([]models.Service, error)
	ListActive(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, svc models.Service) error
	Update(ctx context.Context, svc models.Service) error
	Delete(ctx context.Context, id string) error
}

// ProductCatalog manages the mutable product collection.
type ProductCatalog interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

// StaffRoster manages the mutable barber collection.
type StaffRoster interface {
	List(ctx context.Context) ([]models.Barber, error)
	Search(ctx context.Context, query string) ([]models.Barber, error)
	GetByID(ctx context.Context, id string) (*models.Barber, error)
	Create(ctx context.Context, b models.Barber) error
	Update(ctx context.Context, b models.Barber) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
