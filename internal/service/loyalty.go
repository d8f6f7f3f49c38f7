package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"barberpro/internal/events"
	"barberpro/internal/models"
	"barberpro/internal/storage"

	"github.com/rs/zerolog"
)

// LoyaltyReward is a redeemable perk from the club catalog.
type LoyaltyReward struct {
	Name        string `json:"name"`
	Cost        int64  `json:"cost"`
	Description string `json:"description"`
}

// LoyaltyBalance is a client's current standing in the club.
type LoyaltyBalance struct {
	ClientID string `json:"clientId"`
	Points   int64  `json:"points"`
	Tier     string `json:"tier"`
}

// LoyaltyService keeps per-client point balances in one blob and accrues
// the appointment price on every confirmed booking.
type LoyaltyService struct {
	kv     storage.KV
	logger *zerolog.Logger
	mu     sync.Mutex
}

func NewLoyaltyService(kv storage.KV, logger *zerolog.Logger) *LoyaltyService {
	return &LoyaltyService{kv: kv, logger: logger}
}

// Balance returns the client's points and tier. Unknown clients start at
// the default signup balance.
func (s *LoyaltyService) Balance(ctx context.Context, clientID string) (*LoyaltyBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	points, ok := balances[clientID]
	if !ok {
		points = models.DefaultStartingPoints
	}
	return &LoyaltyBalance{
		ClientID: clientID,
		Points:   points,
		Tier:     models.TierForPoints(points),
	}, nil
}

// Accrue adds points to the client's balance and persists the blob.
func (s *LoyaltyService) Accrue(ctx context.Context, clientID string, points int64) error {
	if clientID == "" || points <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.load(ctx)
	if err != nil {
		return err
	}

	current, ok := balances[clientID]
	if !ok {
		current = models.DefaultStartingPoints
	}
	balances[clientID] = current + points

	return s.save(ctx, balances)
}

// Rewards lists the club's redeemable perks.
func (s *LoyaltyService) Rewards() []LoyaltyReward {
	return []LoyaltyReward{
		{Name: "Corte Grátis", Cost: 2000, Description: "Resgate um corte social completo."},
		{Name: "Pomada Matte", Cost: 1000, Description: "Escolha qualquer pomada da loja."},
		{Name: "Combo Especial", Cost: 3500, Description: "Corte + Barba + Massagem."},
	}
}

// SubscribeAccrual wires the service to the event bus: one point per
// currency unit of every confirmed appointment.
func (s *LoyaltyService) SubscribeAccrual(ctx context.Context, bus *events.EventBus) {
	bus.Subscribe(events.EventAppointmentCreated, func(event *events.Event) error {
		var payload events.AppointmentEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		if err := s.Accrue(ctx, payload.ClientID, int64(math.Round(payload.Price))); err != nil {
			s.logger.Error().Err(err).Str("client_id", payload.ClientID).Msg("loyalty accrual failed")
			return err
		}
		return nil
	})
}

func (s *LoyaltyService) load(ctx context.Context) (map[string]int64, error) {
	raw, ok, err := s.kv.Read(ctx, models.KeyLoyalty)
	if err != nil {
		return nil, fmt.Errorf("read loyalty: %w", err)
	}
	if !ok {
		return map[string]int64{}, nil
	}

	var balances map[string]int64
	if err := json.Unmarshal([]byte(raw), &balances); err != nil {
		s.logger.Warn().Err(err).Str("key", models.KeyLoyalty).Msg("corrupted loyalty blob, starting fresh")
		return map[string]int64{}, nil
	}
	return balances, nil
}

func (s *LoyaltyService) save(ctx context.Context, balances map[string]int64) error {
	data, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("encode loyalty: %w", err)
	}
	if err := s.kv.Write(ctx, models.KeyLoyalty, string(data)); err != nil {
		return fmt.Errorf("persist loyalty: %w", err)
	}
	return nil
}
