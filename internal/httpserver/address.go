package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/service"
	"github.com/storefrontdev/storefront/internal/transport"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.add")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("add_address_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_address_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	address, err := h.Svc.AddAddress(ctx, userID, service.AddressInput{
		RecipientName: req.RecipientName,
		Street:        req.Street,
		Number:        req.Number,
		Complement:    req.Complement,
		Neighborhood:  req.Neighborhood,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
		Phone:         req.Phone,
	})
	if err != nil {
		return fail(c, l, "add_address_error", err)
	}

	l.Info("address_added", "address_id", address.ID)
	return c.JSON(http.StatusCreated, transport.AddAddressResponse{
		Success:   true,
		AddressID: address.ID,
	})
}

func (h *AddressHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("list_addresses_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	addresses, err := h.Svc.ListAddresses(ctx, userID)
	if err != nil {
		return fail(c, l, "list_addresses_error", err)
	}

	return c.JSON(http.StatusOK, addresses)
}
