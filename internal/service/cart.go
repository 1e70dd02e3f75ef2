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

type CartService struct {
	Repo   *repo.GormRepo
	Events *mykafka.Producer
}

func (s *CartService) publish(ctx context.Context, userID uuid.UUID, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, "cart_events", userID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("kafka publish failed", "topic", "cart_events", "error", err)
	}
}

// GetCart returns the cart with nested items, variants and products, or
// nil when none exists. Read path, never creates.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem validates the variant and upserts the cart line: an
// already-present variant gets its quantity incremented, never a
// duplicate row.
func (s *CartService) AddItem(ctx context.Context, userID, variantID uuid.UUID, quantity int) (*models.CartItem, error) {
	if variantID == uuid.Nil {
		return nil, fmt.Errorf("product_variant_id required: %w", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be >= 1: %w", ErrValidation)
	}

	if _, err := s.Repo.GetVariant(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product variant not found: %w", ErrNotFound)
		}
		return nil, err
	}

	item, err := s.Repo.AddItem(ctx, userID, variantID, quantity)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":               "cart_item_added",
		"user_id":            userID,
		"product_variant_id": variantID,
		"quantity":           item.Quantity,
	})
	return item, nil
}

func (s *CartService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	item, cart, err := s.Repo.GetItem(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, fmt.Errorf("cart item does not belong to user: %w", ErrForbidden)
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteItem(ctx, item.ID); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_item_removed",
		"user_id": userID,
		"item_id": item.ID,
	})
	return nil
}

// DecreaseItem lowers the quantity by one with a floor of one; a
// decrease at quantity 1 leaves the line untouched.
func (s *CartService) DecreaseItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	item, err := s.Repo.DecreaseItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":         "cart_item_decreased",
		"user_id":      userID,
		"item_id":      item.ID,
		"new_quantity": item.Quantity,
	})
	return item, nil
}

// AttachAddress links an owned shipping address to the user's cart,
// creating the cart when missing. Re-linking the same address is a
// no-op in effect.
func (s *CartService) AttachAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Cart, error) {
	if addressID == uuid.Nil {
		return nil, fmt.Errorf("shipping_address_id required: %w", ErrValidation)
	}

	address, err := s.Repo.GetAddress(ctx, addressID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("shipping address not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("shipping address does not belong to user: %w", ErrForbidden)
	}

	cart, err := s.Repo.SetCartAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_address_linked",
		"user_id":    userID,
		"cart_id":    cart.ID,
		"address_id": addressID,
	})
	return cart, nil
}
