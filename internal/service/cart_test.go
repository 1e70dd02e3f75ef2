package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/storefrontdev/storefront/internal/models"
)

func TestAddItemIncrementsExistingLine(t *testing.T) {
	svc, db := newCartService(t)
	userID := uuid.New()
	variant := seedVariant(t, db, 1000)

	first, err := svc.AddItem(context.Background(), userID, variant.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, first.Quantity)

	second, err := svc.AddItem(context.Background(), userID, variant.ID, 3)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 5, second.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAddItemUnknownVariant(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	svc, db := newCartService(t)
	variant := seedVariant(t, db, 1000)

	_, err := svc.AddItem(context.Background(), uuid.New(), variant.ID, 0)
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetCartAbsentHasNoSideEffect(t *testing.T) {
	svc, db := newCartService(t)

	cart, err := svc.GetCart(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, cart)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestRemoveItemOwnership(t *testing.T) {
	svc, db := newCartService(t)
	owner := uuid.New()
	variant := seedVariant(t, db, 1000)

	item, err := svc.AddItem(context.Background(), owner, variant.ID, 1)
	require.NoError(t, err)

	err = svc.RemoveItem(context.Background(), uuid.New(), item.ID)
	require.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	require.NoError(t, svc.RemoveItem(context.Background(), owner, item.ID))
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestRemoveItemMissing(t *testing.T) {
	svc, _ := newCartService(t)

	err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecreaseItemFloorsAtOne(t *testing.T) {
	svc, db := newCartService(t)
	userID := uuid.New()
	variant := seedVariant(t, db, 1000)

	item, err := svc.AddItem(context.Background(), userID, variant.ID, 2)
	require.NoError(t, err)

	dec, err := svc.DecreaseItem(context.Background(), userID, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, dec.Quantity)

	// Decreasing at quantity 1 is a no-op, never a delete.
	dec, err = svc.DecreaseItem(context.Background(), userID, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, dec.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDecreaseItemOwnership(t *testing.T) {
	svc, db := newCartService(t)
	owner := uuid.New()
	variant := seedVariant(t, db, 1000)

	item, err := svc.AddItem(context.Background(), owner, variant.ID, 3)
	require.NoError(t, err)

	_, err = svc.DecreaseItem(context.Background(), uuid.New(), item.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAttachAddress(t *testing.T) {
	svc, db := newCartService(t)
	userID := uuid.New()
	address := seedAddress(t, db, userID)

	cart, err := svc.AttachAddress(context.Background(), userID, address.ID)
	require.NoError(t, err)
	require.NotNil(t, cart.ShippingAddressID)
	require.Equal(t, address.ID, *cart.ShippingAddressID)

	// Re-linking the same address is a no-op in effect.
	again, err := svc.AttachAddress(context.Background(), userID, address.ID)
	require.NoError(t, err)
	require.Equal(t, cart.ID, again.ID)
	require.Equal(t, address.ID, *again.ShippingAddressID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAttachAddressOwnership(t *testing.T) {
	svc, db := newCartService(t)
	address := seedAddress(t, db, uuid.New())

	_, err := svc.AttachAddress(context.Background(), uuid.New(), address.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAttachAddressMissing(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AttachAddress(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}
