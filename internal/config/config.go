package config

import (
	"os"
	"strconv"
	"time"
)

// Store driver names
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Settlement SettlementConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StoreConfig selects and configures the durable state store
type StoreConfig struct {
	Driver     string
	SQLitePath string
	Postgres   PostgresConfig
}

// PostgresConfig holds postgres connection settings
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c PostgresConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// AuthConfig holds merchant authentication configuration
type AuthConfig struct {
	JWTSecret     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	// MerchantSecretHash is a bcrypt hash (see cmd/hash-gen). When empty,
	// MerchantSecret is hashed at startup instead.
	MerchantSecretHash string
	MerchantSecret     string
}

// SettlementConfig tunes the simulated settlement network
type SettlementConfig struct {
	// Delay between an online attempt and its settlement.
	Delay time.Duration
	// SyncDelay between a queue drain and each drained attempt's settlement.
	SyncDelay time.Duration
	// SuccessRate in [0,1] for the simulated outcome draw.
	SuccessRate float64
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", StoreDriverSQLite),
			SQLitePath: getEnv("SQLITE_PATH", "smartupi.db"),
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnvAsInt("DB_PORT", 5432),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				DBName:   getEnv("DB_NAME", "smartupi"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:       getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry:      getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			MerchantSecretHash: getEnv("MERCHANT_SECRET_HASH", ""),
			MerchantSecret:     getEnv("MERCHANT_SECRET", "merchant-dev-secret"),
		},
		Settlement: SettlementConfig{
			Delay:       getEnvAsDuration("SETTLEMENT_DELAY", 2*time.Second),
			SyncDelay:   getEnvAsDuration("SYNC_SETTLEMENT_DELAY", 1*time.Second),
			SuccessRate: getEnvAsFloat("SETTLEMENT_SUCCESS_RATE", 0.9),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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
