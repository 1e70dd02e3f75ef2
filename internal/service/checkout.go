package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/models"
	"github.com/storefrontdev/storefront/internal/mykafka"
	"github.com/storefrontdev/storefront/internal/repo"
)

// CheckoutSession is the hosted payment page handed back to the buyer.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentGateway creates hosted checkout sessions with the external
// payment processor. No local state changes happen behind this call.
type PaymentGateway interface {
	CreateSession(ctx context.Context, order *models.Order) (*CheckoutSession, error)
}

type CheckoutService struct {
	Repo    *repo.GormRepo
	Gateway PaymentGateway
	Events  *mykafka.Producer

	// ReusePendingOrder makes FinishOrder hand back the most recent
	// still-pending order instead of minting another one from the same
	// uncleared cart.
	ReusePendingOrder bool
}

func (s *CheckoutService) publish(ctx context.Context, key uuid.UUID, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, "order_events", key.String(), event); err != nil {
		logging.FromContext(ctx).Warn("kafka publish failed", "topic", "order_events", "error", err)
	}
}

// FinishOrder freezes the user's cart into an immutable order: the nine
// address fields are copied by value and every line gets its price
// snapshotted, all inside one transaction. The cart itself survives
// until payment is confirmed.
func (s *CheckoutService) FinishOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if cart.ShippingAddress == nil {
		return nil, fmt.Errorf("shipping address not found: %w", ErrInvalidState)
	}

	if s.ReusePendingOrder {
		if pending, err := s.Repo.LatestPendingOrder(ctx, userID); err == nil {
			return pending, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var total int64
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ProductVariant == nil {
			return nil, fmt.Errorf("cart item %s has no product variant", it.ID)
		}
		total += it.ProductVariant.PriceInCents * int64(it.Quantity)

		variantID := it.ProductVariantID
		items = append(items, models.OrderItem{
			ProductVariantID: &variantID,
			Quantity:         it.Quantity,
			PriceInCents:     it.ProductVariant.PriceInCents,
		})
	}

	addr := cart.ShippingAddress
	order := &models.Order{
		UserID:            userID,
		ShippingAddressID: cart.ShippingAddressID,
		Status:            models.OrderStatusPending,
		RecipientName:     addr.RecipientName,
		Street:            addr.Street,
		Number:            addr.Number,
		Complement:        addr.Complement,
		Neighborhood:      addr.Neighborhood,
		City:              addr.City,
		State:             addr.State,
		ZipCode:           addr.ZipCode,
		Country:           addr.Country,
		Phone:             addr.Phone,
		TotalPriceInCents: total,
	}

	if err := s.Repo.CreateOrderWithItems(ctx, order, items); err != nil {
		return nil, err
	}
	if order.ID == uuid.Nil {
		return nil, fmt.Errorf("order id was not generated")
	}

	s.publish(ctx, userID, map[string]any{
		"type":     "order_created",
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.TotalPriceInCents,
	})
	return order, nil
}

// CreateCheckoutSession asks the payment processor for a hosted session
// tagged with the order id. Ownership-checked, no local writes.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID, orderID uuid.UUID) (*CheckoutSession, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order does not belong to user: %w", ErrForbidden)
	}

	return s.Gateway.CreateSession(ctx, order)
}

// ConfirmPayment reconciles a completed payment event: the order flips
// to confirmed and the owner's cart is cleared, in one transaction.
// Replays are no-ops, never errors.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.ConfirmOrderAndClearCart(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.UserID, map[string]any{
		"type":     "payment_confirmed",
		"user_id":  order.UserID,
		"order_id": order.ID,
	})
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}
