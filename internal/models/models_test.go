package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int64
		want   string
	}{
		{"Zero", 0, TierBronze},
		{"JustBelowSilver", 999, TierBronze},
		{"SilverThreshold", 1000, TierSilver},
		{"DefaultSignup", DefaultStartingPoints, TierSilver},
		{"JustBelowGold", 4999, TierSilver},
		{"GoldThreshold", 5000, TierGold},
		{"WellAboveGold", 100000, TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierForPoints(tt.points))
		})
	}
}

func TestValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, ValidTimeSlot(slot), slot)
	}

	assert.False(t, ValidTimeSlot("12:00"), "lunch gap is not bookable")
	assert.False(t, ValidTimeSlot("08:00"))
	assert.False(t, ValidTimeSlot("19:00"))
	assert.False(t, ValidTimeSlot(""))
	assert.False(t, ValidTimeSlot("14:30"))
}

func TestWizardStateComplete(t *testing.T) {
	full := WizardState{
		BarberID:  "b2",
		Day:       12,
		TimeSlot:  "14:00",
		ServiceID: "2",
	}
	assert.True(t, full.Complete())

	t.Run("MissingBarber", func(t *testing.T) {
		s := full
		s.BarberID = ""
		assert.False(t, s.Complete())
	})

	t.Run("MissingDay", func(t *testing.T) {
		s := full
		s.Day = 0
		assert.False(t, s.Complete())
	})

	t.Run("DayOutOfRange", func(t *testing.T) {
		s := full
		s.Day = DaysInMonth + 1
		assert.False(t, s.Complete())
	})

	t.Run("MissingTime", func(t *testing.T) {
		s := full
		s.TimeSlot = ""
		assert.False(t, s.Complete())
	})

	t.Run("MissingService", func(t *testing.T) {
		s := full
		s.ServiceID = ""
		assert.False(t, s.Complete())
	})
}
