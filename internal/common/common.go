package common

import (
	"pulsecheck-backend/internal/analytics"
	"pulsecheck-backend/internal/classifier"
	"pulsecheck-backend/internal/config"
	"pulsecheck-backend/internal/email"
	"pulsecheck-backend/internal/models"
	"pulsecheck-backend/internal/pipeline"
	"pulsecheck-backend/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type JwtCustomClaims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTIssuer interface {
	GenerateToken(user *models.User) (string, error)
	Middleware() echo.MiddlewareFunc
	Claims(c echo.Context) (*JwtCustomClaims, error)
}

type ServerState struct {
	Echo        *echo.Echo
	Config      *config.Config
	DB          *gorm.DB
	JwtIssuer   JWTIssuer
	Classifier  classifier.Classifier
	Store       *store.FeedbackStore
	Analytics   *analytics.Engine
	Pipeline    *pipeline.Pipeline
	EmailClient email.EmailClient
}
