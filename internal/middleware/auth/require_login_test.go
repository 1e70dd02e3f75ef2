package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func runAuthed(t *testing.T, configure func(*http.Request)) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	configure(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID string
	handler := RequireAuth(testSecret)(func(c echo.Context) error {
		seenUserID, _ = c.Get("user_id").(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seenUserID
}

func TestRequireAuthBearerHeader(t *testing.T) {
	userID := uuid.New()
	token, err := SignAccessToken(userID, testSecret, time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	rec, seen := runAuthed(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID.String(), seen)
}

func TestRequireAuthCookie(t *testing.T) {
	userID := uuid.New()
	token, err := SignAccessToken(userID, testSecret, time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	rec, seen := runAuthed(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID.String(), seen)
}

func TestRequireAuthMissingToken(t *testing.T) {
	rec, _ := runAuthed(t, func(*http.Request) {})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := SignAccessToken(uuid.New(), testSecret, time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)

	rec, _ := runAuthed(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token, err := SignAccessToken(uuid.New(), []byte("other-secret"), time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	rec, _ := runAuthed(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthNonUUIDSubject(t *testing.T) {
	// Signed with the right secret but the subject is not a user id.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(testSecret)
	require.NoError(t, err)

	rec, _ := runAuthed(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
