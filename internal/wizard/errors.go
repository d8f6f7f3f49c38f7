package wizard

import "errors"

var (
	ErrSessionNotFound  = errors.New("wizard: session not found")
	ErrWrongStep        = errors.New("wizard: operation not allowed at current step")
	ErrInvalidDay       = errors.New("wizard: day must be between 1 and 30")
	ErrInvalidTimeSlot  = errors.New("wizard: time slot is not bookable")
	ErrSelectionMissing = errors.New("wizard: barber, date, time and service must all be selected")
	ErrAlreadyConfirmed = errors.New("wizard: session already confirmed")
)
