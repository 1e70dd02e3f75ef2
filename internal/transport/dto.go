package transport

import (
	"github.com/google/uuid"

	"github.com/storefrontdev/storefront/internal/models"
)

type AddToCartRequest struct {
	ProductVariantID uuid.UUID `json:"product_variant_id"`
	Quantity         int       `json:"quantity"`
}

type AttachAddressRequest struct {
	ShippingAddressID uuid.UUID `json:"shipping_address_id"`
}

type AddAddressRequest struct {
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	Number        string `json:"number"`
	Complement    string `json:"complement"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

type AddAddressResponse struct {
	Success   bool      `json:"success"`
	AddressID uuid.UUID `json:"address_id"`
}

type CartResponse struct {
	ID                *uuid.UUID              `json:"id,omitempty"`
	ShippingAddress   *models.ShippingAddress `json:"shipping_address,omitempty"`
	Items             []models.CartItem       `json:"items"`
	TotalPriceInCents int64                   `json:"total_price_in_cents"`
}

// NewCartResponse builds the cart view; a nil cart renders as an empty
// cart rather than an error.
func NewCartResponse(cart *models.Cart) CartResponse {
	if cart == nil {
		return CartResponse{Items: []models.CartItem{}}
	}

	var total int64
	for _, it := range cart.Items {
		if it.ProductVariant != nil {
			total += it.ProductVariant.PriceInCents * int64(it.Quantity)
		}
	}
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		ID:                &cart.ID,
		ShippingAddress:   cart.ShippingAddress,
		Items:             items,
		TotalPriceInCents: total,
	}
}

type FinishOrderResponse struct {
	OrderID           uuid.UUID          `json:"order_id"`
	Status            models.OrderStatus `json:"status"`
	TotalPriceInCents int64              `json:"total_price_in_cents"`
}

type CEPResponse struct {
	Found        bool   `json:"found"`
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
