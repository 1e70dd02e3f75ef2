package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storefrontdev/storefront/internal/models"
	"github.com/storefrontdev/storefront/internal/repo"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newCartService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := InitTestDB(t)
	return &CartService{Repo: repo.New(db)}, db
}

func seedVariant(t *testing.T, db *gorm.DB, priceInCents int64) *models.ProductVariant {
	t.Helper()

	product := models.Product{
		Name:        "Hoodie",
		Slug:        "hoodie-" + uuid.NewString(),
		Description: "test product",
	}
	require.NoError(t, db.Create(&product).Error)

	variant := models.ProductVariant{
		ProductID:     product.ID,
		Name:          "Hoodie Black",
		Slug:          "hoodie-black-" + uuid.NewString(),
		Color:         "black",
		PriceInCents:  priceInCents,
		ImageURL:      "https://cdn.example.com/hoodie.png",
		StockQuantity: 10,
	}
	require.NoError(t, db.Create(&variant).Error)
	return &variant
}

func seedAddress(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.ShippingAddress {
	t.Helper()

	address := models.ShippingAddress{
		UserID:        userID,
		RecipientName: "Ana Souza",
		Street:        "Avenida Paulista",
		Number:        "1578",
		Complement:    "ap 12",
		Neighborhood:  "Bela Vista",
		City:          "Sao Paulo",
		State:         "SP",
		ZipCode:       "01310100",
		Country:       "BR",
		Phone:         "11912345678",
	}
	require.NoError(t, db.Create(&address).Error)
	return &address
}
