package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID        `gorm:"primaryKey"       json:"id"`
	Name        string           `gorm:"not null"         json:"name"`
	Slug        string           `gorm:"unique;not null"  json:"slug"`
	Description string           `gorm:"not null"         json:"description"`
	CreatedAt   time.Time        `gorm:"not null"         json:"created_at"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string { return "products" }

type ProductVariant struct {
	ID            uuid.UUID `gorm:"primaryKey"         json:"id"`
	ProductID     uuid.UUID `gorm:"index;not null"     json:"product_id"`
	Name          string    `gorm:"not null"           json:"name"`
	Slug          string    `gorm:"unique;not null"    json:"slug"`
	Color         string    `gorm:"not null"           json:"color"`
	PriceInCents  int64     `gorm:"not null"           json:"price_in_cents"`
	ImageURL      string    `gorm:"not null"           json:"image_url"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"not null"           json:"created_at"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (ProductVariant) TableName() string { return "product_variants" }

// ShippingAddress rows are never updated in place; edits create new rows.
type ShippingAddress struct {
	ID            uuid.UUID `gorm:"primaryKey"      json:"id"`
	UserID        uuid.UUID `gorm:"index;not null"  json:"user_id"`
	RecipientName string    `gorm:"not null"        json:"recipient_name"`
	Street        string    `gorm:"not null"        json:"street"`
	Number        string    `gorm:"not null"        json:"number"`
	Complement    string    `gorm:"not null"        json:"complement"`
	Neighborhood  string    `gorm:"not null"        json:"neighborhood"`
	City          string    `gorm:"not null"        json:"city"`
	State         string    `gorm:"not null"        json:"state"`
	ZipCode       string    `gorm:"not null"        json:"zip_code"`
	Country       string    `gorm:"not null"        json:"country"`
	Phone         string    `gorm:"not null"        json:"phone"`
	CreatedAt     time.Time `gorm:"not null"        json:"created_at"`
}

func (a *ShippingAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (ShippingAddress) TableName() string { return "shipping_addresses" }

// Cart is the mutable working state for one user. The unique index on
// UserID makes "one open cart per user" a storage invariant instead of
// an application convention.
type Cart struct {
	ID                uuid.UUID        `gorm:"primaryKey"           json:"id"`
	UserID            uuid.UUID        `gorm:"uniqueIndex;not null" json:"user_id"`
	ShippingAddressID *uuid.UUID       `gorm:"index"                json:"shipping_address_id"`
	CreatedAt         time.Time        `gorm:"not null"             json:"created_at"`
	ShippingAddress   *ShippingAddress `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	Items             []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID               uuid.UUID       `gorm:"primaryKey"                            json:"id"`
	CartID           uuid.UUID       `gorm:"uniqueIndex:idx_cart_variant;not null" json:"cart_id"`
	ProductVariantID uuid.UUID       `gorm:"uniqueIndex:idx_cart_variant;not null" json:"product_variant_id"`
	Quantity         int             `gorm:"not null;default:1;check:quantity>0"   json:"quantity"`
	CreatedAt        time.Time       `gorm:"not null"                              json:"created_at"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID"           json:"product_variant,omitempty"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string { return "cart_items" }

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable price snapshot. Address fields are copied by
// value from the cart's shipping address at checkout time and
// TotalPriceInCents is never recomputed afterward.
type Order struct {
	ID                uuid.UUID   `gorm:"primaryKey"               json:"id"`
	UserID            uuid.UUID   `gorm:"index;not null"           json:"user_id"`
	ShippingAddressID *uuid.UUID  `gorm:"index"                    json:"shipping_address_id"`
	Status            OrderStatus `gorm:"not null;default:pending" json:"status"`
	RecipientName     string      `gorm:"not null"                 json:"recipient_name"`
	Street            string      `gorm:"not null"                 json:"street"`
	Number            string      `gorm:"not null"                 json:"number"`
	Complement        string      `gorm:"not null"                 json:"complement"`
	Neighborhood      string      `gorm:"not null"                 json:"neighborhood"`
	City              string      `gorm:"not null"                 json:"city"`
	State             string      `gorm:"not null"                 json:"state"`
	ZipCode           string      `gorm:"not null"                 json:"zip_code"`
	Country           string      `gorm:"not null"                 json:"country"`
	Phone             string      `gorm:"not null"                 json:"phone"`
	TotalPriceInCents int64       `gorm:"not null"                 json:"total_price_in_cents"`
	CreatedAt         time.Time   `gorm:"not null"                 json:"created_at"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID               uuid.UUID  `gorm:"primaryKey"     json:"id"`
	OrderID          uuid.UUID  `gorm:"index;not null" json:"order_id"`
	ProductVariantID *uuid.UUID `gorm:"index"          json:"product_variant_id"`
	Quantity         int        `gorm:"not null"       json:"quantity"`
	PriceInCents     int64      `gorm:"not null"       json:"price_in_cents"`
	CreatedAt        time.Time  `gorm:"not null"       json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string { return "order_items" }

// All lists every entity owned by this module, in migration order.
func All() []any {
	return []any{
		&Product{},
		&ProductVariant{},
		&ShippingAddress{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}
