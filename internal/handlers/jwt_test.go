package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck-backend/internal/common"
	"pulsecheck-backend/internal/models"
)

func protectedEcho(auth *JwtAuth) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, claims)
	}, auth.Middleware())
	return e
}

func TestJwtAuthRoundTrip(t *testing.T) {
	auth := NewJwtAuth("test-secret")
	e := protectedEcho(auth)

	user := &models.User{ID: 12, Email: "alex@example.com", Role: "student"}
	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"alex@example.com"`)
	assert.Contains(t, rec.Body.String(), `"id":12`)
	assert.Contains(t, rec.Body.String(), `"role":"student"`)
}

func TestJwtAuthMissingToken(t *testing.T) {
	auth := NewJwtAuth("test-secret")
	e := protectedEcho(auth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJwtAuthWrongSecret(t *testing.T) {
	auth := NewJwtAuth("test-secret")
	e := protectedEcho(auth)

	other := NewJwtAuth("another-secret")
	token, err := other.GenerateToken(&models.User{ID: 1, Email: "alex@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJwtAuthExpiredToken(t *testing.T) {
	auth := NewJwtAuth("test-secret")
	e := protectedEcho(auth)

	claims := &common.JwtCustomClaims{
		ID:    1,
		Email: "alex@example.com",
		Role:  "student",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(auth.Secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGenerateTokenExpiry(t *testing.T) {
	auth := NewJwtAuth("test-secret")

	token, err := auth.GenerateToken(&models.User{ID: 5, Email: "alex@example.com", Role: "admin"})
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &common.JwtCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(*common.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(5), claims.ID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}
