package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"pulsecheck-backend/internal/common"
	"pulsecheck-backend/internal/models"
)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = time.Hour

// JwtAuth issues and verifies HS256 tokens carrying id, email and role.
type JwtAuth struct {
	Secret string
}

func NewJwtAuth(secret string) *JwtAuth {
	return &JwtAuth{Secret: secret}
}

// GenerateToken signs a token for the given user, expiring after tokenTTL.
func (j *JwtAuth) GenerateToken(user *models.User) (string, error) {
	claims := &common.JwtCustomClaims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.Secret))
}

// Middleware guards routes with bearer-token auth. A request with no token
// at all gets 401; a present but invalid or expired token gets 403.
func (j *JwtAuth) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(common.JwtCustomClaims)
		},
		SigningKey: []byte(j.Secret),
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if errors.As(err, &extractionErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}
			return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token.")
		},
	})
}

// Claims returns the verified claims the middleware stored on the context.
func (j *JwtAuth) Claims(c echo.Context) (*common.JwtCustomClaims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, fmt.Errorf("no verified token on request context")
	}
	claims, ok := token.Claims.(*common.JwtCustomClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	return claims, nil
}
