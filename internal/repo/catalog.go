package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefrontdev/storefront/internal/models"
)

// Catalog reads. The checkout flow treats these as read-only.

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).
		Preload("Variants").
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Variants").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.DB.WithContext(ctx).
		Where("id = ?", variantID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormRepo) GetVariantBySlug(ctx context.Context, slug string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("slug = ?", slug).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}
