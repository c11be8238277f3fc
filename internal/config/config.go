package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Jobs     JobsConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret         string
	AccessTokenExpiry time.Duration
}

// JobsConfig contains recurring analytics job configuration
type JobsConfig struct {
	AnomalyInterval     time.Duration
	ForecastInterval    time.Duration
	BudgetCheckInterval time.Duration
	// Detector sensitivity in [0,1]; higher means more anomalies flagged
	AnomalySensitivity float64
	// Days of history fetched for detection and forecasting
	AnomalyLookbackDays  int
	ForecastLookbackDays int
	ForecastHorizonDays  int
	// Cron expression for the retention sweep
	RetentionSchedule string
	RetentionMaxAge   time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", ""),
			Path:   getEnv("DB_PATH", "cloudspend.db"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AccessTokenExpiry: getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		},
		Jobs: JobsConfig{
			AnomalyInterval:      getEnvAsDuration("JOB_ANOMALY_INTERVAL", time.Hour),
			ForecastInterval:     getEnvAsDuration("JOB_FORECAST_INTERVAL", 6*time.Hour),
			BudgetCheckInterval:  getEnvAsDuration("JOB_BUDGET_CHECK_INTERVAL", time.Hour),
			AnomalySensitivity:   getEnvAsFloat("JOB_ANOMALY_SENSITIVITY", 0.1),
			AnomalyLookbackDays:  getEnvAsInt("JOB_ANOMALY_LOOKBACK_DAYS", 30),
			ForecastLookbackDays: getEnvAsInt("JOB_FORECAST_LOOKBACK_DAYS", 90),
			ForecastHorizonDays:  getEnvAsInt("JOB_FORECAST_HORIZON_DAYS", 30),
			RetentionSchedule:    getEnv("JOB_RETENTION_SCHEDULE", "0 3 * * *"),
			RetentionMaxAge:      getEnvAsDuration("JOB_RETENTION_MAX_AGE", 90*24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Environment == "production" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required for postgres")
	}
	if c.Jobs.AnomalySensitivity < 0 || c.Jobs.AnomalySensitivity > 1 {
		return fmt.Errorf("JOB_ANOMALY_SENSITIVITY must be in [0,1]")
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as a float
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
