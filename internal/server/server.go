package server

import (
	"fmt"
	"strings"

	"pulsecheck-backend/internal/analytics"
	"pulsecheck-backend/internal/classifier"
	"pulsecheck-backend/internal/common"
	"pulsecheck-backend/internal/config"
	"pulsecheck-backend/internal/email"
	"pulsecheck-backend/internal/handlers"
	"pulsecheck-backend/internal/models"
	"pulsecheck-backend/internal/pipeline"
	"pulsecheck-backend/internal/store"

	"github.com/go-playground/validator"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	resend "github.com/resend/resend-go/v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CustomValidator Source: https://echo.labstack.com/docs/request#validate-data
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return err
	}
	return nil
}

type SentryLogger struct {
	echo.Logger
}

func (l *SentryLogger) Error(i ...interface{}) {
	// Capture in Sentry
	if err, ok := i[0].(error); ok {
		handlers.CaptureError(err)
	} else {
		handlers.CaptureError(fmt.Errorf("%v", i...))
	}
	// Call original logger
	l.Logger.Error(i...)
}

type Server struct {
	common.ServerState
}

func New(cfg *config.Config) *Server {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Logger = &SentryLogger{Logger: e.Logger}
	e.Logger.SetLevel(log.DEBUG)

	return &Server{
		common.ServerState{
			Echo:   e,
			Config: cfg,
		},
	}
}

func (s *Server) Initialize() error {
	// Initialize database
	s.setupDatabase()

	// Initialize JWT
	s.JwtIssuer = handlers.NewJwtAuth(s.Config.Auth.JWTSecret)

	// Initialize the classifier and the batch pipeline around it
	s.setupClassifier()

	// Initialize Resend email client
	s.setupEmailClient()

	s.Store = store.New(s.DB)
	s.Analytics = analytics.New(s.Store)
	s.Pipeline = pipeline.New(s.Store, s.Classifier, s.Echo.Logger)

	// Setup routes
	s.setupRoutes()

	// Run Migrations
	s.runMigrations()

	// Setup middleware -
	// Keep last to avoid Recover middleware and panic if something goes wrong on init
	s.setupMiddleware()

	return nil
}

func (s *Server) setupDatabase() {
	dsn := s.Config.Database.DSN
	if dsn == "" {
		s.Echo.Logger.Fatal("DATABASE_DSN environment variable is required")
	}

	var db *gorm.DB
	var err error

	// Detect database driver from DSN
	// SQLite DSNs typically start with "file:"
	if strings.HasPrefix(dsn, "file:") {
		// Use SQLite driver for testing
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	} else {
		// Use PostgreSQL driver for production
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	}

	if err != nil {
		s.Echo.Logger.Fatal(err)
	}
	s.DB = db
}

func (s *Server) setupClassifier() {
	if s.Config.ModelConfigured() {
		s.Classifier = classifier.NewGemini(s.Config.Gemini.APIKey, s.Config.Gemini.Model, s.Echo.Logger)
		return
	}

	s.Echo.Logger.Warn("GEMINI_API_KEY not configured, feedback will be categorized randomly")
	s.Classifier = classifier.NewRandom(nil)
}

func (s *Server) setupEmailClient() {
	apiKey := s.Config.Resend.APIKey
	if apiKey == "" {
		s.Echo.Logger.Warn("RESEND_API_KEY not configured, email notifications will be disabled")
		return
	}

	resendClient := resend.NewClient(apiKey)
	s.EmailClient = email.NewResendEmailClient(resendClient,
		s.Config.Resend.DefaultSender,
		s.Echo.Logger)
}

func (s *Server) runMigrations() {
	err := s.DB.AutoMigrate(
		&models.User{},
		&models.Feedback{},
	)
	if err != nil {
		s.Echo.Logger.Fatal(err)
	}
}

func (s *Server) setupMiddleware() {
	s.Echo.Use(middleware.CORS())
	s.Echo.Use(middleware.Recover())
	// Try to add prometheus middleware, but don't panic if already registered (e.g., in tests)
	// This allows multiple test runs without panicking
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok && err.Error() == "duplicate metrics collector registration attempted" {
				s.Echo.Logger.Warn("Prometheus middleware already registered, skipping")
			} else {
				panic(r)
			}
		}
	}()
	s.Echo.Use(echoprometheus.NewMiddleware("pulsecheck_backend"))
}

func (s *Server) setupRoutes() {
	handlers.SetupSentry(s.Echo, s.Config)

	// Initialize handlers
	auth := handlers.NewAuthHandler(s.ServerState)
	feedback := handlers.NewFeedbackHandler(s.ServerState)

	s.Echo.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	s.Echo.GET("/metrics", echoprometheus.NewHandler())

	// Authentication endpoints
	s.Echo.POST("/auth/signup", auth.SignUp)
	s.Echo.POST("/auth/login", auth.SignIn)

	// Submitting feedback requires a valid token; reading does not
	s.Echo.POST("/analyze-feedback", feedback.AnalyzeFeedback, s.JwtIssuer.Middleware())
	s.Echo.GET("/analytics", feedback.GetAnalytics)
	s.Echo.GET("/feedback", feedback.History)
}

func (s *Server) Start() error {
	serverURL := s.Config.Server.Host + ":" + s.Config.Server.Port
	return s.Echo.Start(serverURL)
}
