// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Security SecurityConfig
	Pricing  PricingConfig
	Payment  PaymentConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SessionConfig contains guest session token configuration
type SessionConfig struct {
	Secret   string
	TokenTTL time.Duration
	StateTTL time.Duration // lifetime of mirrored cart/wishlist state in the KV store
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// PricingPolicy contains the shipping and tax rules for one product line.
// Tax rates are basis points so all money math stays in integers.
type PricingPolicy struct {
	Line                       string
	FreeShippingThresholdCents int64
	FlatShippingCents          int64
	TaxRateBasisPoints         int64
}

// PricingConfig contains per-product-line pricing policies
type PricingConfig struct {
	Currency string
	Physical PricingPolicy
	Digital  PricingPolicy
}

// ForLine returns the policy for the given product line, defaulting to physical
func (p PricingConfig) ForLine(line string) PricingPolicy {
	if line == "digital" {
		return p.Digital
	}
	return p.Physical
}

// PaymentConfig contains payment provider configurations
type PaymentConfig struct {
	Card    CardProviderConfig
	Wallet  WalletProviderConfig
	Timeout time.Duration
}

// CardProviderConfig contains the card processor configuration
type CardProviderConfig struct {
	BaseURL   string
	SecretKey string
}

// WalletProviderConfig contains the redirect-wallet provider configuration
type WalletProviderConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "storefront_db"),
			User:         getEnv("DB_USER", "storefront_user"),
			Password:     getEnv("DB_PASSWORD", "storefront_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "change-me-storefront-session-secret-0000"),
			TokenTTL: getEnvAsDuration("SESSION_TOKEN_TTL", 30*24*time.Hour),
			StateTTL: getEnvAsDuration("SESSION_STATE_TTL", 30*24*time.Hour),
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Pricing: PricingConfig{
			Currency: getEnv("PRICING_CURRENCY", "USD"),
			Physical: PricingPolicy{
				Line:                       "physical",
				FreeShippingThresholdCents: getEnvAsInt64("PRICING_PHYSICAL_FREE_SHIPPING_CENTS", 5000),
				FlatShippingCents:          getEnvAsInt64("PRICING_PHYSICAL_FLAT_SHIPPING_CENTS", 999),
				TaxRateBasisPoints:         getEnvAsInt64("PRICING_PHYSICAL_TAX_BASIS_POINTS", 800),
			},
			Digital: PricingPolicy{
				Line:                       "digital",
				FreeShippingThresholdCents: getEnvAsInt64("PRICING_DIGITAL_FREE_SHIPPING_CENTS", 0),
				FlatShippingCents:          getEnvAsInt64("PRICING_DIGITAL_FLAT_SHIPPING_CENTS", 0),
				TaxRateBasisPoints:         getEnvAsInt64("PRICING_DIGITAL_TAX_BASIS_POINTS", 0),
			},
		},
		Payment: PaymentConfig{
			Card: CardProviderConfig{
				BaseURL:   getEnv("CARD_PROVIDER_BASE_URL", "https://api.cardprocessor.example.com/v1"),
				SecretKey: getEnv("CARD_PROVIDER_SECRET_KEY", ""),
			},
			Wallet: WalletProviderConfig{
				BaseURL:      getEnv("WALLET_PROVIDER_BASE_URL", "https://api.wallet.example.com/v2"),
				ClientID:     getEnv("WALLET_PROVIDER_CLIENT_ID", ""),
				ClientSecret: getEnv("WALLET_PROVIDER_CLIENT_SECRET", ""),
			},
			Timeout: getEnvAsDuration("PAYMENT_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Pricing.Physical.TaxRateBasisPoints < 0 || c.Pricing.Digital.TaxRateBasisPoints < 0 {
		return fmt.Errorf("tax rates cannot be negative")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
