// Package checkout turns a session-held cart into a persisted order: it
// validates the customer form, prices the cart, writes the order and its
// item snapshots in one transaction, and clears the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aguaviva/storefront/internal/cart"
	"github.com/aguaviva/storefront/internal/domain"
	"github.com/aguaviva/storefront/internal/pricing"
	"github.com/aguaviva/storefront/internal/session"
)

// ErrEmptyCart means there is nothing resolvable to check out. Routing, not
// validation: the handler sends the visitor back to the catalog.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// OrderStore persists an order and its items atomically.
type OrderStore interface {
	CreateWithItems(ctx context.Context, order *domain.Order) error
}

// EventPublisher emits the order-confirmed event. Satisfied by
// messaging.Producer; may be left nil when no broker is configured.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	resolver  *cart.Resolver
	orders    OrderStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(resolver *cart.Resolver, orders OrderStore, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		resolver:  resolver,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout runs a submission end to end. It returns ErrEmptyCart when the
// cart resolves to nothing, a *ValidationError for user-correctable input,
// and the persisted order on success. Persistence failures propagate as-is:
// order creation is not idempotent, so nothing here retries.
func (s *Service) Checkout(ctx context.Context, sess *session.Session, form Form) (*domain.Order, error) {
	items, subtotal, err := s.resolver.Resolve(ctx, cart.Contents(sess))
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	cleaned, verr := form.Validate()
	if verr != nil {
		return nil, verr
	}

	shipping := pricing.ShippingCost(subtotal, true)

	token, err := newAccessToken()
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	order := &domain.Order{
		CustomerName:    cleaned.Name,
		Phone:           cleaned.Phone,
		ShippingAddress: cleaned.Address,
		Message:         cleaned.Message,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           subtotal.Add(shipping),
		Status:          domain.OrderStatusConfirmed,
		Token:           token,
		CreatedAt:       s.now(),
		Items:           snapshotItems(items),
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	cart.Clear(sess)

	if s.publisher != nil {
		event := domain.OrderConfirmedEvent{
			OrderID:      order.ID,
			CustomerName: order.CustomerName,
			Phone:        order.Phone,
			Total:        order.Total.StringFixed(2),
			ItemCount:    len(order.Items),
			Token:        order.Token,
			Timestamp:    order.CreatedAt,
		}
		key := strconv.FormatInt(order.ID, 10)
		if err := s.publisher.Publish(ctx, key, event); err != nil {
			s.logger.Error("failed to publish order confirmed event", "error", err, "order_id", order.ID)
		}
	}

	s.logger.Info("order created", "order_id", order.ID, "total", order.Total.StringFixed(2))
	return order, nil
}

// snapshotItems freezes each resolved line into an order item, copying the
// product name and unit price so later catalog edits never touch this order.
func snapshotItems(items []domain.LineItem) []domain.OrderItem {
	snapshots := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		snapshots = append(snapshots, domain.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	return snapshots
}
