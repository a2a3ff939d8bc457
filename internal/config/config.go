package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultJWTSecret = "default_jwt_secret"

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	LogLevel             string
	JWTSecret            string
	JWTExpirationSeconds int
	BcryptCost           int
	AppointmentMinLead   time.Duration
	Database             DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := getEnv("DB_DRIVER", "mysql")

	defaultPort := "3306"
	defaultUser := "root"
	if driver == "postgres" {
		defaultPort = "5432"
		defaultUser = "postgres"
	}

	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultPort),
		Username: getEnv("DB_USERNAME", defaultUser),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	switch driver {
	case "mysql":
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	case "postgres":
		dbConfig.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			dbConfig.Host, dbConfig.Username, dbConfig.Password, dbConfig.Name, dbConfig.Port, dbConfig.SSLMode)
	case "sqlite":
		dbConfig.DSN = dbConfig.Name + ".db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected mysql, postgres or sqlite)", driver)
	}

	jwtExpSeconds, err := strconv.Atoi(getEnv("JWT_EXPIRATION_SECONDS", "3600"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_SECONDS: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	minLeadMinutes, err := strconv.Atoi(getEnv("APPOINTMENT_MIN_LEAD_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid APPOINTMENT_MIN_LEAD_MINUTES: %w", err)
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Origin:               getEnv("ORIGIN", "http://localhost:3000"),
		Environment:          getEnv("NODE_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		JWTSecret:            getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpirationSeconds: jwtExpSeconds,
		BcryptCost:           bcryptCost,
		AppointmentMinLead:   time.Duration(minLeadMinutes) * time.Minute,
		Database:             dbConfig,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDev reports whether the server runs in development mode.
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

// ProviderTokenTTL is the lifetime of provider access tokens.
func (c *Config) ProviderTokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationSeconds) * time.Second
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.JWTExpirationSeconds <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_SECONDS must be positive, got %d", c.JWTExpirationSeconds)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.AppointmentMinLead < 0 {
		return fmt.Errorf("APPOINTMENT_MIN_LEAD_MINUTES must not be negative")
	}
	if c.Environment == "production" && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
