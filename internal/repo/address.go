package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefrontdev/storefront/internal/models"
)

func (r *GormRepo) CreateAddress(ctx context.Context, address *models.ShippingAddress) error {
	return r.DB.WithContext(ctx).Create(address).Error
}

func (r *GormRepo) GetAddress(ctx context.Context, addressID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	if err := r.DB.WithContext(ctx).Where("id = ?", addressID).First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}
