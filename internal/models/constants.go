package models

const (
	StatusScheduled = "SCHEDULED"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

const (
	RoleClient = "CLIENT"
	RoleBarber = "BARBER"
	RoleAdmin  = "ADMIN"
)

const (
	TierBronze = "BRONZE"
	TierSilver = "SILVER"
	TierGold   = "GOLD"
)

const (
	BarberAvailable = "available"
	BarberBusy      = "busy"
	BarberAway      = "away"
)

// Wizard steps. Linear flow, no cycles; a session only ever moves forward.
const (
	StepSelectBarber  Step = 1
	StepSelectDate    Step = 2
	StepSelectTime    Step = 3
	StepSelectService Step = 4
	StepConfirm       Step = 5
	StepDone          Step = 6
)

// Persistence keys. They mirror the browser storage keys of the first
// BarberPro front-end so existing exports stay importable.
const (
	KeyServices     = "barberpro_services"
	KeyProducts     = "barberpro_products"
	KeyAppointments = "barberpro_appointments"
	KeyStaff        = "barberpro_staff"
	KeyLoyalty      = "barberpro_loyalty"
	KeyCartPrefix   = "barberpro_cart:"
)

const (
	// DaysInMonth is the size of the fixed booking calendar grid.
	DaysInMonth = 30

	// SilverMinPoints and GoldMinPoints are the loyalty tier thresholds.
	SilverMinPoints = 1000
	GoldMinPoints   = 5000

	// ShippingFee is the flat checkout delivery fee.
	ShippingFee = 15.0

	// ProductRevenueUnit is the simulated revenue per listed product.
	ProductRevenueUnit = 45.0

	// CommissionRate and ExpenseRate are the financial report multipliers.
	CommissionRate = 0.40
	ExpenseRate    = 0.20

	// DefaultSessionTTL is how long an unfinished wizard session survives.
	DefaultSessionTTL = 24 * 60 * 60 // seconds

	// DefaultStartingPoints is the loyalty balance granted on first login.
	DefaultStartingPoints = 1250
)

// TimeSlots is the fixed slot grid: 09:00 through 18:00 with a lunch gap.
var TimeSlots = []string{
	"09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
}

// ValidTimeSlot reports whether slot is one of the bookable slots.
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// TierForPoints maps a loyalty balance to its club tier.
func TierForPoints(points int64) string {
	switch {
	case points >= GoldMinPoints:
		return TierGold
	case points >= SilverMinPoints:
		return TierSilver
	default:
		return TierBronze
	}
}
