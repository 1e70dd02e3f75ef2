package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storefrontdev/storefront/internal/models"
	"github.com/storefrontdev/storefront/internal/payments"
	"github.com/storefrontdev/storefront/internal/repo"
	"github.com/storefrontdev/storefront/internal/service"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhookEnv(t *testing.T) (*WebhookHTTP, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	handler := &WebhookHTTP{
		Svc:      &service.CheckoutService{Repo: repo.New(db)},
		Verifier: &payments.StripeGateway{WebhookSecret: testWebhookSecret},
	}
	return handler, db
}

// seedPendingOrder creates a pending order together with the owner's
// still-populated cart, mirroring the state right after checkout.
func seedPendingOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()

	userID := uuid.New()

	product := models.Product{Name: "Camiseta", Slug: "camiseta-" + uuid.NewString()}
	require.NoError(t, db.Create(&product).Error)
	variant := models.ProductVariant{
		ProductID:     product.ID,
		Slug:          "camiseta-azul-" + uuid.NewString(),
		Color:         "azul",
		PriceInCents:  2500,
		StockQuantity: 10,
	}
	require.NoError(t, db.Create(&variant).Error)

	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:           cart.ID,
		ProductVariantID: variant.ID,
		Quantity:         1,
	}).Error)

	order := models.Order{
		UserID:            userID,
		Status:            models.OrderStatusPending,
		RecipientName:     "Ana Souza",
		Street:            "Avenida Paulista",
		Number:            "1578",
		Neighborhood:      "Bela Vista",
		City:              "Sao Paulo",
		State:             "SP",
		ZipCode:           "01310100",
		Country:           "BR",
		Phone:             "11912345678",
		TotalPriceInCents: 2500,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completedSessionPayload(t *testing.T, metadata map[string]string) []byte {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_" + uuid.NewString(),
		"type": "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id":       "cs_test_123",
				"metadata": metadata,
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func postWebhook(handler *WebhookHTTP, payload []byte, sig string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stripe/webhook", strings.NewReader(string(payload)))
	if sig != "" {
		req.Header.Set("stripe-signature", sig)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, handler.HandleStripe(c)
}

func TestWebhookMissingSignature(t *testing.T) {
	handler, _ := newWebhookEnv(t)

	payload := completedSessionPayload(t, map[string]string{"orderId": uuid.NewString()})
	rec, err := postWebhook(handler, payload, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookBadSignature(t *testing.T) {
	handler, db := newWebhookEnv(t)
	order := seedPendingOrder(t, db)

	payload := completedSessionPayload(t, map[string]string{"orderId": order.ID.String()})
	rec, err := postWebhook(handler, payload, signPayload(payload, "whsec_wrong_secret"))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusPending, reloaded.Status)
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	handler, _ := newWebhookEnv(t)

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_" + uuid.NewString(),
		"type": "invoice.paid",
		"data": map[string]any{"object": map[string]any{}},
	})
	require.NoError(t, err)

	rec, err := postWebhook(handler, payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"received":true}`, rec.Body.String())
}

func TestWebhookMissingOrderMetadata(t *testing.T) {
	handler, _ := newWebhookEnv(t)

	payload := completedSessionPayload(t, map[string]string{})
	rec, err := postWebhook(handler, payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookInvalidOrderMetadata(t *testing.T) {
	handler, _ := newWebhookEnv(t)

	payload := completedSessionPayload(t, map[string]string{"orderId": "not-a-uuid"})
	rec, err := postWebhook(handler, payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookUnknownOrder(t *testing.T) {
	handler, _ := newWebhookEnv(t)

	payload := completedSessionPayload(t, map[string]string{"orderId": uuid.NewString()})
	rec, err := postWebhook(handler, payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookConfirmsOrderAndClearsCart(t *testing.T) {
	handler, db := newWebhookEnv(t)
	order := seedPendingOrder(t, db)

	payload := completedSessionPayload(t, map[string]string{"orderId": order.ID.String()})
	rec, err := postWebhook(handler, payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"received":true}`, rec.Body.String())

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusConfirmed, reloaded.Status)

	var carts, items int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.Equal(t, int64(0), carts)
	require.Equal(t, int64(0), items)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	handler, db := newWebhookEnv(t)
	order := seedPendingOrder(t, db)

	payload := completedSessionPayload(t, map[string]string{"orderId": order.ID.String()})
	sig := signPayload(payload, testWebhookSecret)

	for i := 0; i < 2; i++ {
		rec, err := postWebhook(handler, payload, sig)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
}
