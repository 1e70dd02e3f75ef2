package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/service"
	"github.com/storefrontdev/storefront/internal/transport"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

// FinishOrder converts the cart into a pending order. The cart is only
// cleared later, when the payment webhook confirms.
func (h *CheckoutHTTP) FinishOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.finish_order")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("finish_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	order, err := h.Svc.FinishOrder(ctx, userID)
	if err != nil {
		return fail(c, l, "finish_order_error", err)
	}

	l.Info("order_created", "order_id", order.ID, "total", order.TotalPriceInCents)
	return c.JSON(http.StatusCreated, transport.FinishOrderResponse{
		OrderID:           order.ID,
		Status:            order.Status,
		TotalPriceInCents: order.TotalPriceInCents,
	})
}

func (h *CheckoutHTTP) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create_session")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("create_session_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		l.Warn("create_session_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid order id")
	}

	sess, err := h.Svc.CreateCheckoutSession(ctx, userID, orderID)
	if err != nil {
		return fail(c, l, "create_session_error", err)
	}

	l.Info("checkout_session_created", "order_id", orderID, "session_id", sess.ID)
	return c.JSON(http.StatusCreated, sess)
}

func (h *CheckoutHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.list_orders")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		return fail(c, l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, orders)
}
