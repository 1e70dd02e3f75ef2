package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefrontdev/storefront/internal/models"
)

// GetCart loads the user's cart with items, their variants and the
// variants' products. Returns gorm.ErrRecordNotFound when no cart exists.
func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("ShippingAddress").
		Preload("Items").
		Preload("Items.ProductVariant").
		Preload("Items.ProductVariant.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func getOrCreateCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		// A concurrent request may have won the unique-index race on
		// user_id; the cart it created is ours to reuse.
		var existing models.Cart
		if ferr := tx.Where("user_id = ?", userID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem upserts the (cart, variant) line inside one transaction:
// an atomic quantity increment first, an insert only when no row moved.
// The unique index on (cart_id, product_variant_id) backstops the race.
func (r *GormRepo) AddItem(ctx context.Context, userID, variantID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_variant_id = ?", cart.ID, variantID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("cart_id = ? AND product_variant_id = ?", cart.ID, variantID).
				First(&item).Error
		}

		item = models.CartItem{
			CartID:           cart.ID,
			ProductVariantID: variantID,
			Quantity:         quantity,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem loads a cart item and its owning cart for ownership checks.
func (r *GormRepo) GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, nil, err
	}
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("id = ?", item.CartID).First(&cart).Error; err != nil {
		return nil, nil, err
	}
	return &item, &cart, nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// DecreaseItem decrements the quantity by one, floored at one. A
// decrease at quantity 1 is a no-op, never a delete. The guarded
// UPDATE makes the floor atomic under concurrent decreases.
func (r *GormRepo) DecreaseItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("id = ? AND quantity > 1", itemID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		return tx.Where("id = ?", itemID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetCartAddress links the address to the user's cart, creating the
// cart when missing. Re-linking the same address is a no-op in effect.
func (r *GormRepo) SetCartAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Model(c).Update("shipping_address_id", addressID).Error; err != nil {
			return err
		}
		c.ShippingAddressID = &addressID
		cart = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes the cart and its items in one transaction. Clearing
// an already-deleted cart is a no-op.
func (r *GormRepo) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cartID).Delete(&models.Cart{}).Error
	})
}
