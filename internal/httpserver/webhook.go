package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/service"
	"github.com/storefrontdev/storefront/internal/transport"
)

// EventVerifier authenticates a raw webhook payload against its
// signature header.
type EventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type WebhookHTTP struct {
	Svc      *service.CheckoutService
	Verifier EventVerifier
}

// HandleStripe reconciles payment-provider events. Only
// checkout.session.completed mutates anything; every other event type
// is acknowledged so the provider stops retrying. Replays of the same
// event are safe: confirming twice and clearing a gone cart are no-ops.
func (h *WebhookHTTP) HandleStripe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "webhook.stripe")

	sig := c.Request().Header.Get("stripe-signature")
	if sig == "" {
		l.Warn("webhook_rejected", "reason", "missing signature header")
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing signature"})
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("webhook_rejected", "reason", "unreadable body", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}

	event, err := h.Verifier.VerifyEvent(payload, sig)
	if err != nil {
		l.Warn("webhook_rejected", "reason", "signature verification failed", "error", err)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
	}

	if event.Type != "checkout.session.completed" {
		l.Info("webhook_ignored", "event_type", event.Type)
		return c.JSON(http.StatusOK, transport.WebhookResponse{Received: true})
	}

	var session struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		l.Warn("webhook_error", "reason", "undecodable session object", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid event payload"})
	}

	rawOrderID, ok := session.Metadata["orderId"]
	if !ok || rawOrderID == "" {
		l.Warn("webhook_error", "reason", "missing orderId metadata", "event_id", event.ID)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing orderId metadata"})
	}
	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		l.Warn("webhook_error", "reason", "invalid orderId metadata", "event_id", event.ID)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid orderId metadata"})
	}

	if _, err := h.Svc.ConfirmPayment(ctx, orderID); err != nil {
		return fail(c, l, "webhook_confirm_error", err)
	}

	l.Info("payment_confirmed", "order_id", orderID, "event_id", event.ID)
	return c.JSON(http.StatusOK, transport.WebhookResponse{Received: true})
}
