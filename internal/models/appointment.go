package models

import "time"

// Appointment is a fully denormalized snapshot of a completed booking.
// It never holds a live reference to a Barber, Service or User record:
// the catalogs are independently mutable and must not corrupt history.
type Appointment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	ClientName  string    `json:"clientName"`
	BarberID    string    `json:"barberId"`
	BarberName  string    `json:"barberName"`
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
