package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// DegradedReadPolicy controls what reads return while the store is unreachable.
type DegradedReadPolicy string

const (
	// DegradedReadMemory serves reads from the in-process fallback list.
	DegradedReadMemory DegradedReadPolicy = "memory"
	// DegradedReadEmpty answers reads with empty results instead.
	DegradedReadEmpty DegradedReadPolicy = "empty"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	LogLevel     string

	// DBDSN may be empty, in which case the service runs memory-only.
	DBDSN               string
	DegradedReads       DegradedReadPolicy
	HealthProbeInterval time.Duration

	// PublicBaseURL is the serving origin used to build booking links and
	// receipt URLs, e.g. "https://booking.example.com".
	PublicBaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	AdminUsername       string
	AdminPassword       string // plain text, dev convenience
	AdminPasswordBcrypt string // takes precedence over AdminPassword when set

	ReceiptDir      string
	ReceiptMaxBytes int64
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Empty DSN means the durable store is absent and every operation runs
	// against the fallback lists.
	cfg.DBDSN = os.Getenv("DB_DSN")

	policy := DegradedReadPolicy(getEnv("DEGRADED_READS", string(DegradedReadMemory)))
	if policy != DegradedReadMemory && policy != DegradedReadEmpty {
		return nil, fmt.Errorf("invalid DEGRADED_READS: %q (want %q or %q)", policy, DegradedReadMemory, DegradedReadEmpty)
	}
	cfg.DegradedReads = policy

	probeStr := getEnv("HEALTH_PROBE_INTERVAL", "15s")
	probe, err := time.ParseDuration(probeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTH_PROBE_INTERVAL: %w", err)
	}
	cfg.HealthProbeInterval = probe

	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:8080")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttlStr := getEnv("JWT_TTL", "12h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.AdminPasswordBcrypt = os.Getenv("ADMIN_PASSWORD_BCRYPT")
	if cfg.AdminPassword == "" && cfg.AdminPasswordBcrypt == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_BCRYPT is required")
	}

	cfg.ReceiptDir = getEnv("RECEIPT_DIR", "./data/receipts")

	maxBytes, err := getEnvAsInt64("RECEIPT_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid RECEIPT_MAX_BYTES: %w", err)
	}
	cfg.ReceiptMaxBytes = maxBytes

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as an int64.
// It returns the default value if the variable is not set.
func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
