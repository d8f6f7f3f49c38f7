package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barberpro/internal/domain"
	"barberpro/internal/events"
	"barberpro/internal/metrics"
	"barberpro/internal/models"
	"barberpro/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyCart             = errors.New("service: cart is empty")
	ErrUnknownPaymentMethod  = errors.New("service: unknown payment method")
	ErrUnknownProductInCart  = errors.New("service: cart references unknown product")
	ErrInvalidCartQuantity   = errors.New("service: cart quantity must be positive")
	ErrCheckoutNotAuthorized = errors.New("service: checkout requires a client")
)

var paymentMethods = map[string]bool{
	"card":   true,
	"pix":    true,
	"apple":  true,
	"google": true,
	"boleto": true,
}

// CartItem references a product by id; prices are resolved against the
// live catalog at checkout time.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderLine is a priced cart line on the final receipt.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Order is the receipt of a completed checkout. Orders are not part of
// the appointment history and are not persisted beyond the receipt.
type Order struct {
	ID            string      `json:"id"`
	ClientID      string      `json:"clientId"`
	Lines         []OrderLine `json:"lines"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	CompletedAt   time.Time   `json:"completedAt"`
}

// CheckoutService handles the store cart and the simulated payment flow.
// Process is a real asynchronous boundary: it resolves with either a
// receipt or an error, and the cart is only cleared on success.
type CheckoutService struct {
	kv       storage.KV
	products domain.ProductCatalog
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewCheckoutService(kv storage.KV, products domain.ProductCatalog, eventBus domain.EventPublisher, logger *zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		kv:       kv,
		products: products,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Cart returns the client's current cart; empty on first use.
func (s *CheckoutService) Cart(ctx context.Context, clientID string) ([]CartItem, error) {
	raw, ok, err := s.kv.Read(ctx, cartKey(clientID))
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if !ok {
		return []CartItem{}, nil
	}

	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn().Err(err).Str("client_id", clientID).Msg("corrupted cart blob, starting fresh")
		return []CartItem{}, nil
	}
	return items, nil
}

// SetCart replaces the client's cart after validating every line.
func (s *CheckoutService) SetCart(ctx context.Context, clientID string, items []CartItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return ErrInvalidCartQuantity
		}
		if _, err := s.products.GetByID(ctx, item.ProductID); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownProductInCart, item.ProductID)
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Write(ctx, cartKey(clientID), string(data)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// Process prices the cart, applies the flat shipping fee and completes
// the order. On success the cart is cleared; on any failure it is left
// untouched so the client can retry.
func (s *CheckoutService) Process(ctx context.Context, clientID, paymentMethod string) (*Order, error) {
	if clientID == "" {
		return nil, ErrCheckoutNotAuthorized
	}
	if !paymentMethods[paymentMethod] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, paymentMethod)
	}

	items, err := s.Cart(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		ID:            uuid.NewString(),
		ClientID:      clientID,
		PaymentMethod: paymentMethod,
		Shipping:      models.ShippingFee,
		CompletedAt:   time.Now(),
	}

	for _, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProductInCart, item.ProductID)
		}
		order.Lines = append(order.Lines, OrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
		})
		order.Subtotal += p.Price * float64(item.Quantity)
	}
	order.Total = order.Subtotal + order.Shipping

	if err := s.kv.Write(ctx, cartKey(clientID), "[]"); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if s.eventBus != nil {
		payload := events.OrderEventPayload{
			OrderID:       order.ID,
			ClientID:      order.ClientID,
			PaymentMethod: order.PaymentMethod,
			Total:         order.Total,
		}
		if err := s.eventBus.PublishJSON(events.EventOrderCompleted, payload); err != nil {
			s.logger.Error().Err(err).Str("order_id", order.ID).Msg("publish event error")
		}
	}
	metrics.IncOrderCompleted()

	s.logger.Info().
		Str("order_id", order.ID).
		Str("client_id", clientID).
		Str("payment_method", paymentMethod).
		Float64("total", order.Total).
		Msg("checkout completed")

	return order, nil
}

func cartKey(clientID string) string {
	return models.KeyCartPrefix + clientID
}
