package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/transport"
	"github.com/storefrontdev/storefront/internal/viacep"
)

type CEPHTTP struct {
	Client *viacep.Client
}

// Lookup pre-fills address form fields from a zip code. Lookup trouble
// degrades to "not found"; the form just stays blank.
func (h *CEPHTTP) Lookup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cep.lookup")

	address, err := h.Client.Lookup(ctx, c.Param("cep"))
	if err != nil {
		l.Warn("cep_lookup_degraded", "cep", c.Param("cep"), "error", err)
		return c.JSON(http.StatusNotFound, transport.CEPResponse{Found: false})
	}
	if address == nil {
		return c.JSON(http.StatusNotFound, transport.CEPResponse{Found: false})
	}

	return c.JSON(http.StatusOK, transport.CEPResponse{
		Found:        true,
		Street:       address.Street,
		Neighborhood: address.Neighborhood,
		City:         address.City,
		State:        address.State,
	})
}
