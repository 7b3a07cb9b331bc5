package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lindell/go-burner-email-providers/burner"
	"gorm.io/gorm"

	"pulsecheck-backend/internal/common"
	"pulsecheck-backend/internal/models"
)

type AuthHandler struct {
	common.ServerState
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student admin"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(state common.ServerState) *AuthHandler {
	return &AuthHandler{ServerState: state}
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	c.Logger().Info("Received sign-up request")

	req := new(SignUpRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if burner.IsBurnerEmail(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "Temporary email addresses are not allowed")
	}

	u := &models.User{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}

	result := h.DB.Create(u)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
	}
	if result.Error != nil {
		c.Logger().Errorf("Failed to create user: %v", result.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	if h.EmailClient != nil {
		h.EmailClient.SendWelcomeEmail(u)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created",
		"user":    u.Public(),
	})
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	c.Logger().Info("Received sign-in request")

	req := new(SignInRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u := &models.User{}
	result := h.DB.Where("email = ?", req.Email).First(u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}
	if result.Error != nil {
		c.Logger().Errorf("Failed to look up user: %v", result.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign in")
	}

	if !u.CheckPassword(req.Password) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := h.JwtIssuer.GenerateToken(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u.Public(),
	})
}
