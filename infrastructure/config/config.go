package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerHost  string
	ServerPort  string
	Environment string

	DatabaseURL string

	JWTSecret      string
	AccessTokenTTL time.Duration

	// Prompt enhancement (Gemini)
	GoogleAPIKey string
	GeminiModel  string

	// Image generation (OpenAI), ordered primary-first
	OpenAIAPIKey string
	ImageModels  []string
	ImageSize    string

	// Billing (Stripe)
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	AssetDir string

	// Bound on every outbound network call; a timeout counts as a provider
	// failure and triggers fallback in the orchestrator.
	OutboundTimeout time.Duration

	LogLevel  string
	LogFormat string

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL    = errors.New("invalid token TTL format")
	ErrInvalidTimeout     = errors.New("invalid outbound timeout format")
	ErrNoImageModels      = errors.New("IMAGE_MODELS must list at least one model")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	baseURL := getEnvOrDefault("APP_BASE_URL", "http://localhost:8080")

	cfg := &Config{
		ServerHost:  getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		Environment: getEnvOrDefault("ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ImageModels:  parseList(getEnvOrDefault("IMAGE_MODELS", "dall-e-3,dall-e-2")),
		ImageSize:    getEnvOrDefault("IMAGE_SIZE", "1024x1024"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePriceID:       os.Getenv("STRIPE_PRICE_ID"),
		CheckoutSuccessURL:  getEnvOrDefault("CHECKOUT_SUCCESS_URL", baseURL+"/?subscribed=true"),
		CheckoutCancelURL:   getEnvOrDefault("CHECKOUT_CANCEL_URL", baseURL+"/?canceled=true"),

		AssetDir: getEnvOrDefault("ASSET_DIR", "static"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if len(cfg.ImageModels) == 0 {
		return nil, ErrNoImageModels
	}

	accessTokenTTL, err := parseSeconds(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "86400"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTokenTTL

	outboundTimeout, err := parseSeconds(getEnvOrDefault("OUTBOUND_TIMEOUT", "30"))
	if err != nil {
		return nil, ErrInvalidTimeout
	}
	cfg.OutboundTimeout = outboundTimeout

	if cfg.GoogleAPIKey == "" {
		logMissing("GOOGLE_API_KEY (prompt enhancement will fall back to raw prompts)")
	}
	if cfg.OpenAIAPIKey == "" {
		logMissing("OPENAI_API_KEY (image generation will fail)")
	}
	if cfg.StripeSecretKey == "" {
		logMissing("STRIPE_SECRET_KEY (checkout will fail)")
	}
	if cfg.StripeWebhookSecret == "" {
		logMissing("STRIPE_WEBHOOK_SECRET (webhooks will be rejected)")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}

func logMissing(msg string) {
	fmt.Fprintf(os.Stderr, "[config] missing %s\n", msg)
}
