package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	APIBaseURL string
	APITimeout time.Duration

	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	OutOfStockNotice      time.Duration
	PollInterval          time.Duration
	PromotionTZ           *time.Location
	VNDRate               decimal.Decimal

	SessionBackend string
	SessionTTL     time.Duration
	CookieSecure   bool
	CORSOrigins    []string
}

// Load reads the environment, after an optional .env file in the working
// directory.
func Load() (Config, error) {
	_ = godotenv.Load()

	var err error
	cfg := Config{
		Port:           getenvDefault("PORT", "8081"),
		AppEnv:         getenvDefault("APP_ENV", "development"),
		LogLevel:       getenvDefault("LOG_LEVEL", "info"),
		APIBaseURL:     getenvDefault("API_BASE_URL", "http://localhost:8080/bookverse/api"),
		SessionBackend: strings.ToLower(getenvDefault("SESSION_BACKEND", "memory")),
		CORSOrigins:    splitList(getenvDefault("CORS_ORIGINS", "http://localhost:5173")),
	}

	if cfg.APITimeout, err = durationEnv("API_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutOfStockNotice, err = durationEnv("OUT_OF_STOCK_NOTICE", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PollInterval, err = durationEnv("NOTIFICATION_POLL_INTERVAL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ShippingFee, err = decimalEnv("SHIPPING_FEE", "5"); err != nil {
		return Config{}, err
	}
	if cfg.FreeShippingThreshold, err = decimalEnv("FREE_SHIPPING_THRESHOLD", "50"); err != nil {
		return Config{}, err
	}
	if cfg.VNDRate, err = decimalEnv("VND_RATE", "25000"); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}

	cfg.PromotionTZ = time.Local
	if name := os.Getenv("PROMOTION_TZ"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("PROMOTION_TZ: %w", err)
		}
		cfg.PromotionTZ = loc
	}

	switch cfg.SessionBackend {
	case "memory", "postgres":
	default:
		return Config{}, fmt.Errorf("SESSION_BACKEND: unknown backend %q", cfg.SessionBackend)
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func decimalEnv(key, def string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getenvDefault(key, def))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
