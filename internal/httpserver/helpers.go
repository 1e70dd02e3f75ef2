package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storefrontdev/storefront/internal/service"
)

// GetID reads the authenticated user id placed in the context by the
// auth middleware.
func GetID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}

	return userID, nil
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail maps a service error to a response. Internal detail is logged,
// never echoed to the client.
func fail(c echo.Context, l *slog.Logger, op string, err error) error {
	status := httpStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
		l.Error(op, "status", status, "error", err)
	} else {
		l.Warn(op, "status", status, "error", err)
	}
	return c.JSON(status, map[string]string{"error": msg})
}
