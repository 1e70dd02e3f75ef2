package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/storefrontdev/storefront/internal/middleware/auth"
)

type Deps struct {
	CartHandler     *CartHTTP
	AddressHandler  *AddressHTTP
	CheckoutHandler *CheckoutHTTP
	CatalogHandler  *CatalogHTTP
	WebhookHandler  *WebhookHTTP
	CEPHandler      *CEPHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	// Public surface. The webhook authenticates with its signature
	// header, not a session.
	v1.POST("/stripe/webhook", d.WebhookHandler.HandleStripe)
	v1.GET("/cep/:cep", d.CEPHandler.Lookup)
	v1.GET("/products", d.CatalogHandler.ListProducts)
	v1.GET("/products/:slug", d.CatalogHandler.GetProduct)
	v1.GET("/product-variants/:slug", d.CatalogHandler.GetVariant)

	authed := v1.Group("", authmw.RequireAuth(d.JWTSecret))

	authed.GET("/cart", d.CartHandler.GetCart)
	authed.POST("/cart/items", d.CartHandler.AddItem)
	authed.DELETE("/cart/items/:id", d.CartHandler.RemoveItem)
	authed.POST("/cart/items/:id/decrease", d.CartHandler.DecreaseItem)
	authed.PUT("/cart/shipping-address", d.CartHandler.AttachAddress)

	authed.POST("/addresses", d.AddressHandler.AddAddress)
	authed.GET("/addresses", d.AddressHandler.ListAddresses)

	authed.POST("/checkout", d.CheckoutHandler.FinishOrder)
	authed.POST("/checkout/:orderID/session", d.CheckoutHandler.CreateSession)
	authed.GET("/orders", d.CheckoutHandler.ListOrders)
}
