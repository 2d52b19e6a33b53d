package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"donationledger/internal/domain"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	LogLevel            string
	DatabaseURL         string
	DataDir             string
	DBMaxConns          int
	JWTSecret           string
	JWTIssuer           string
	ContractAddress     domain.Address
	OwnerAddress        domain.Address
	FeeCollectorAddress domain.Address
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
	MetricsDenoms       []string
	TrustedProxies      []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// An empty DATABASE_URL selects the file store under DATA_DIR, or the
// in-memory store when DATA_DIR is empty too.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         strings.ToLower(os.Getenv("LOG_LEVEL")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DataDir:          strings.TrimSpace(os.Getenv("DATA_DIR")),
		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 10),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        getEnv("JWT_ISSUER", "donation-ledger"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		MetricsDenoms:    getEnvList("METRICS_DENOMS"),
		TrustedProxies:   getEnvList("TRUSTED_PROXIES"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	contract, err := domain.ParseAddress(getEnv("CONTRACT_ADDRESS", "donation-contract"))
	if err != nil {
		return nil, fmt.Errorf("CONTRACT_ADDRESS: %w", err)
	}
	cfg.ContractAddress = contract

	owner := strings.TrimSpace(os.Getenv("OWNER_ADDRESS"))
	feeCollector := strings.TrimSpace(os.Getenv("FEE_COLLECTOR_ADDRESS"))
	if (owner == "") != (feeCollector == "") {
		return nil, fmt.Errorf("OWNER_ADDRESS and FEE_COLLECTOR_ADDRESS must be set together")
	}
	if owner != "" {
		if cfg.OwnerAddress, err = domain.ParseAddress(owner); err != nil {
			return nil, fmt.Errorf("OWNER_ADDRESS: %w", err)
		}
		if cfg.FeeCollectorAddress, err = domain.ParseAddress(feeCollector); err != nil {
			return nil, fmt.Errorf("FEE_COLLECTOR_ADDRESS: %w", err)
		}
	}

	return cfg, nil
}

// AutoInstantiate reports whether the singletons should be written at boot.
func (c *Config) AutoInstantiate() bool {
	return c.OwnerAddress != "" && c.FeeCollectorAddress != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
