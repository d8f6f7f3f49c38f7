package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventAppointmentCreated = "appointment_created"
	EventOrderCompleted     = "order_completed"
	EventCatalogChanged     = "catalog_changed"
)

// AppointmentEventPayload is the minimal appointment snapshot handed to
// event consumers (loyalty accrual, ledger export, metrics).
type AppointmentEventPayload struct {
	AppointmentID string    `json:"appointment_id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"`
	BarberID      string    `json:"barber_id"`
	BarberName    string    `json:"barber_name"`
	ServiceID     string    `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderEventPayload describes a completed checkout.
type OrderEventPayload struct {
	OrderID       string  `json:"order_id"`
	ClientID      string  `json:"client_id"`
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
	Processed bool
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
