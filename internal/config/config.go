package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Store    StoreConfig
	DB       DatabaseConfig
	Redis    RedisConfig
	Business BusinessConfig
	CORS     CORSConfig
	Worker   WorkerConfig
	S3       S3Config
	Twilio   TwilioConfig
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver     string
	DataFile   string
	SQLitePath string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// BusinessConfig carries shop rules.
type BusinessConfig struct {
	Location          *time.Location
	PriceTolerance    decimal.Decimal
	StrictTransitions bool
	SeedSampleData    bool
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// WorkerConfig contains schedules for background workers.
type WorkerConfig struct {
	SnapshotSchedule      string
	LowStockCheckInterval time.Duration
}

// S3Config contains the snapshot archive bucket. Enabled reports whether the
// snapshot worker should run.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// TwilioConfig contains credentials for low-stock SMS alerts.
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	AlertNumber string
}

// Enabled reports whether every Twilio field is set.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != "" && c.AlertNumber != ""
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "3000")
	cfg.Env = getEnv("ENV", "development")

	// Store
	cfg.Store = StoreConfig{
		Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		DataFile:   getEnv("DATA_FILE", "db.json"),
		SQLitePath: getEnv("SQLITE_PATH", "mariano.db"),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:      getEnv("REDIS_HOST", "redis"),
		Port:      getEnv("REDIS_PORT", "6379"),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        getEnvInt("REDIS_DB", 0),
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "mariano_"),
	}

	// Business rules
	var err error
	if cfg.Business.Location, err = time.LoadLocation(getEnv("TIMEZONE", "America/Sao_Paulo")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.Business.PriceTolerance, err = decimal.NewFromString(getEnv("SALE_PRICE_TOLERANCE", "0.01")); err != nil {
		return nil, fmt.Errorf("invalid SALE_PRICE_TOLERANCE: %w", err)
	}
	if cfg.Business.PriceTolerance.IsNegative() {
		return nil, errors.New("invalid SALE_PRICE_TOLERANCE: must be >= 0")
	}
	cfg.Business.StrictTransitions = getEnvBool("ORDER_STRICT_TRANSITIONS", true)
	cfg.Business.SeedSampleData = getEnvBool("SEED_SAMPLE_DATA", cfg.Env != "production")

	// CORS
	cfg.CORS.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"))

	// Workers
	cfg.Worker.SnapshotSchedule = getEnv("SNAPSHOT_SCHEDULE", "@daily")
	if cfg.Worker.LowStockCheckInterval, err = parseDurationEnv("LOW_STOCK_CHECK_INTERVAL", "30m"); err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_CHECK_INTERVAL: %w", err)
	}

	// S3 snapshot archive
	region := getEnv("S3_REGION", "sa-east-1")
	cfg.S3 = S3Config{
		Region:          region,
		Bucket:          getEnv("S3_BUCKET", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Twilio
	cfg.Twilio = TwilioConfig{
		AccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber:  getEnv("TWILIO_PHONE_NUMBER", ""),
		AlertNumber: getEnv("ALERT_PHONE_NUMBER", ""),
	}

	switch cfg.Store.Driver {
	case DriverFile, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q: use file, sqlite, postgres or redis", cfg.Store.Driver)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a bool or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
