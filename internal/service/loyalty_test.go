package service

import (
	"context"
	"testing"

	"barberpro/internal/events"
	"barberpro/internal/models"
	"barberpro/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoyaltyBalanceDefaults(t *testing.T) {
	ctx := context.Background()
	loyalty := NewLoyaltyService(storage.NewMemoryKV(), testLogger())

	balance, err := loyalty.Balance(ctx, "new-client")
	require.NoError(t, err)
	assert.Equal(t, int64(models.DefaultStartingPoints), balance.Points)
	assert.Equal(t, models.TierSilver, balance.Tier)
}

func TestLoyaltyAccrue(t *testing.T) {
	ctx := context.Background()
	loyalty := NewLoyaltyService(storage.NewMemoryKV(), testLogger())

	require.NoError(t, loyalty.Accrue(ctx, "c1", 60))

	balance, err := loyalty.Balance(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(1310), balance.Points)

	t.Run("CrossesGoldThreshold", func(t *testing.T) {
		require.NoError(t, loyalty.Accrue(ctx, "c1", 4000))

		balance, err := loyalty.Balance(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(5310), balance.Points)
		assert.Equal(t, models.TierGold, balance.Tier)
	})

	t.Run("NoopOnInvalidInput", func(t *testing.T) {
		require.NoError(t, loyalty.Accrue(ctx, "", 10))
		require.NoError(t, loyalty.Accrue(ctx, "c1", 0))
		require.NoError(t, loyalty.Accrue(ctx, "c1", -5))

		balance, err := loyalty.Balance(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(5310), balance.Points)
	})
}

func TestLoyaltyCorruptBlobStartsFresh(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Write(ctx, models.KeyLoyalty, "###"))

	loyalty := NewLoyaltyService(kv, testLogger())
	balance, err := loyalty.Balance(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(models.DefaultStartingPoints), balance.Points)
}

func TestLoyaltySubscribeAccrual(t *testing.T) {
	ctx := context.Background()
	loyalty := NewLoyaltyService(storage.NewMemoryKV(), testLogger())
	bus := events.NewEventBus()
	loyalty.SubscribeAccrual(ctx, bus)

	require.NoError(t, bus.PublishJSON(events.EventAppointmentCreated, events.AppointmentEventPayload{
		AppointmentID: "a1",
		ClientID:      "c1",
		Price:         60,
	}))

	balance, err := loyalty.Balance(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(1310), balance.Points)
}

func TestLoyaltyRewards(t *testing.T) {
	loyalty := NewLoyaltyService(storage.NewMemoryKV(), testLogger())
	rewards := loyalty.Rewards()
	require.Len(t, rewards, 3)
	for _, r := range rewards {
		assert.NotEmpty(t, r.Name)
		assert.Positive(t, r.Cost)
	}
}
