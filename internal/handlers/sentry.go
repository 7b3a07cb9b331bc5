package handlers

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"pulsecheck-backend/internal/config"
)

// SetupSentry initializes error reporting and attaches the Sentry middleware.
// A missing DSN disables reporting; CaptureError becomes a no-op.
func SetupSentry(e *echo.Echo, cfg *config.Config) {
	if cfg.Sentry.DSN == "" {
		e.Logger.Warn("SENTRY_DSN not configured, error reporting disabled")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn: cfg.Sentry.DSN,
	})
	if err != nil {
		e.Logger.Warnf("Sentry initialization failed: %v", err)
		return
	}

	e.Use(sentryecho.New(sentryecho.Options{
		Repanic: true,
	}))
}

// CaptureError reports an error to Sentry if reporting is enabled.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
	sentry.Flush(2 * time.Second)
}
