package models

import "time"

type Step int

// WizardState is the in-progress selection state of one booking session.
// Selections are copied in at pick time, so catalog edits made while the
// session is open never leak into the final appointment.
type WizardState struct {
	SessionID  string `json:"session_id"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	Step       Step   `json:"step"`

	BarberID   string `json:"barber_id,omitempty"`
	BarberName string `json:"barber_name,omitempty"`

	// Day is the picked calendar day, 1..DaysInMonth; 0 means not picked.
	Day      int    `json:"day,omitempty"`
	TimeSlot string `json:"time_slot,omitempty"`

	ServiceID    string  `json:"service_id,omitempty"`
	ServiceName  string  `json:"service_name,omitempty"`
	ServicePrice float64 `json:"service_price,omitempty"`

	StartedAt time.Time `json:"started_at"`
}

// Complete reports whether every selection needed for confirmation is set.
func (s *WizardState) Complete() bool {
	return s.BarberID != "" && s.Day >= 1 && s.Day <= DaysInMonth &&
		s.TimeSlot != "" && s.ServiceID != ""
}
