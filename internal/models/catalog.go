package models

// Catalog records. Mutated only through the admin service; the booking
// wizard reads them and copies what it needs.

type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Image           string  `json:"image,omitempty"`
	IsCombo         bool    `json:"isCombo,omitempty"`
	IsActive        bool    `json:"isActive"`
}

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category"`
}

type Barber struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Avatar            string   `json:"avatar,omitempty"`
	Specialties       []string `json:"specialties"`
	Rating            float64  `json:"rating"`
	Bio               string   `json:"bio,omitempty"`
	Status            string   `json:"status"`
	NextAvailableSlot string   `json:"nextAvailableSlot,omitempty"`
}
