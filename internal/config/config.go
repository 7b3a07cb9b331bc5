package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// geminiKeyPlaceholder is the value shipped in .env.example; treating it as
// unset keeps fresh checkouts in fallback mode instead of sending requests
// with an invalid key.
const geminiKeyPlaceholder = "your_gemini_api_key_here"

type Config struct {
	Server struct {
		Port string
		Host string
	}
	Auth struct {
		JWTSecret string
	}
	Database struct {
		DSN string
	}
	Gemini struct {
		APIKey string
		Model  string
	}
	Sentry struct {
		DSN string
	}
	Resend struct {
		APIKey        string
		DefaultSender string
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %s\n", err)
	}

	c := &Config{}

	c.Server.Port = os.Getenv("SERVER_PORT")
	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	c.Server.Host = os.Getenv("SERVER_HOST")

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if c.Auth.JWTSecret == "" {
		fmt.Println("WARNING: JWT_SECRET not set, using insecure built-in default")
		c.Auth.JWTSecret = "secret"
	}

	c.Database.DSN = os.Getenv("DATABASE_DSN")

	c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	c.Gemini.Model = os.Getenv("GEMINI_MODEL")
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash-lite"
	}

	c.Sentry.DSN = os.Getenv("SENTRY_DSN")

	c.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	c.Resend.DefaultSender = os.Getenv("RESEND_DEFAULT_SENDER")
	if c.Resend.DefaultSender == "" {
		c.Resend.DefaultSender = "noreply@pulsecheck.app"
	}

	return c, nil
}

// ModelConfigured reports whether a usable Gemini API key is present.
func (c *Config) ModelConfigured() bool {
	return c.Gemini.APIKey != "" && c.Gemini.APIKey != geminiKeyPlaceholder
}
