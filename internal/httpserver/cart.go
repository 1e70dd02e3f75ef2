package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/service"
	"github.com/storefrontdev/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(c, l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("add_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, userID, req.ProductVariantID, req.Quantity)
	if err != nil {
		return fail(c, l, "add_item_error", err)
	}

	l.Info("cart_item_added", "item_id", item.ID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) itemID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("remove_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := h.itemID(c)
	if err != nil {
		l.Warn("remove_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveItem(ctx, userID, itemID); err != nil {
		return fail(c, l, "remove_item_error", err)
	}

	l.Info("cart_item_removed", "item_id", itemID)
	return c.JSON(http.StatusOK, map[string]any{"deleted_item": itemID})
}

func (h *CartHTTP) DecreaseItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrease_item")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("decrease_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := h.itemID(c)
	if err != nil {
		l.Warn("decrease_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	item, err := h.Svc.DecreaseItem(ctx, userID, itemID)
	if err != nil {
		return fail(c, l, "decrease_item_error", err)
	}

	l.Info("cart_item_decreased", "item_id", item.ID, "new_quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) AttachAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.attach_address")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("attach_address_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AttachAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("attach_address_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AttachAddress(ctx, userID, req.ShippingAddressID)
	if err != nil {
		return fail(c, l, "attach_address_error", err)
	}

	l.Info("cart_address_linked", "cart_id", cart.ID, "address_id", req.ShippingAddressID)
	return c.JSON(http.StatusOK, cart)
}
