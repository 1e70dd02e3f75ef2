package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/storefrontdev/storefront/internal/models"
	"github.com/storefrontdev/storefront/internal/service"
)

// StripeGateway talks to Stripe for hosted checkout sessions and
// verifies incoming webhook payloads against the endpoint secret.
type StripeGateway struct {
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

func NewStripeGateway(secretKey, webhookSecret, successURL, cancelURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		WebhookSecret: webhookSecret,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	}
}

// CreateSession creates a hosted checkout session tagged with the order
// id in its metadata. The webhook reads that tag back on completion.
func (g *StripeGateway) CreateSession(ctx context.Context, order *models.Order) (*service.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.SuccessURL),
		CancelURL:  stripe.String(g.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyBRL)),
					UnitAmount: stripe.Int64(order.TotalPriceInCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Order %s", order.ID)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("orderId", order.ID.String())

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	return &service.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyEvent checks the stripe-signature header against the webhook
// secret and parses the event. API version drift on the provider side
// is tolerated; a bad signature is not.
func (g *StripeGateway) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, g.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
}
