package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// History store backends selectable through HISTORY_STORE.
const (
	HistoryStorePostgres = "postgres"
	HistoryStoreSQLite   = "sqlite"
	HistoryStoreMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	DatabaseURL   string
	EnableDBCheck bool

	HistoryStore   string
	SQLitePath     string
	MigrationsPath string

	// Upstream rate provider
	FixerAPIURL            string
	FixerAPIKey            string
	FixerTimeout           time.Duration
	FixerRequestsPerSecond float64

	// Initial backoff between upstream attempts; doubles on every retry.
	RetryInitialDelay time.Duration
	// Zero keeps the rate cache unbounded.
	RateCacheMaxEntries int

	APIRateLimit       string
	CORSAllowedOrigins []string

	KafkaBrokers         []string
	KafkaConversionTopic string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("HISTORY_STORE", HistoryStoreMemory)
	viper.SetDefault("SQLITE_PATH", "fxapi.db")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("FIXER_API_URL", "http://data.fixer.io/api/latest")
	viper.SetDefault("FIXER_API_KEY", "")
	viper.SetDefault("FIXER_TIMEOUT", "10s")
	viper.SetDefault("FIXER_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("RETRY_INITIAL_DELAY", "2s")
	viper.SetDefault("RATE_CACHE_MAX_ENTRIES", 0)
	viper.SetDefault("API_RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_CONVERSION_TOPIC", "conversion.recorded")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		HistoryStore:           strings.ToLower(strings.TrimSpace(viper.GetString("HISTORY_STORE"))),
		SQLitePath:             viper.GetString("SQLITE_PATH"),
		MigrationsPath:         viper.GetString("MIGRATIONS_PATH"),
		FixerAPIURL:            viper.GetString("FIXER_API_URL"),
		FixerAPIKey:            viper.GetString("FIXER_API_KEY"),
		FixerRequestsPerSecond: viper.GetFloat64("FIXER_REQUESTS_PER_SECOND"),
		RateCacheMaxEntries:    viper.GetInt("RATE_CACHE_MAX_ENTRIES"),
		APIRateLimit:           viper.GetString("API_RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		KafkaBrokers:           splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaConversionTopic:   viper.GetString("KAFKA_CONVERSION_TOPIC"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	var err error
	if cfg.FixerTimeout, err = parseDuration("FIXER_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RetryInitialDelay, err = parseDuration("RETRY_INITIAL_DELAY"); err != nil {
		return nil, err
	}

	if cfg.FixerAPIKey == "" {
		log.Println("Warning: FIXER_API_KEY not set. Upstream requests will be rejected by the provider.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.HistoryStore {
	case HistoryStorePostgres:
		if c.DatabaseURL == "" {
			result = multierror.Append(result, fmt.Errorf("PGSQL_URL is required when HISTORY_STORE=%s", HistoryStorePostgres))
		}
	case HistoryStoreSQLite:
		if c.SQLitePath == "" {
			result = multierror.Append(result, fmt.Errorf("SQLITE_PATH is required when HISTORY_STORE=%s", HistoryStoreSQLite))
		}
	case HistoryStoreMemory:
	default:
		result = multierror.Append(result, fmt.Errorf("HISTORY_STORE must be one of %s, %s, %s; got %q",
			HistoryStorePostgres, HistoryStoreSQLite, HistoryStoreMemory, c.HistoryStore))
	}

	if u, err := url.Parse(c.FixerAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("FIXER_API_URL must be an absolute URL; got %q", c.FixerAPIURL))
	}
	if c.FixerTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("FIXER_TIMEOUT must be positive"))
	}
	if c.FixerRequestsPerSecond < 0 {
		result = multierror.Append(result, fmt.Errorf("FIXER_REQUESTS_PER_SECOND must not be negative"))
	}
	if c.RetryInitialDelay <= 0 {
		result = multierror.Append(result, fmt.Errorf("RETRY_INITIAL_DELAY must be positive"))
	}
	if c.RateCacheMaxEntries < 0 {
		result = multierror.Append(result, fmt.Errorf("RATE_CACHE_MAX_ENTRIES must not be negative"))
	}
	if c.APIRateLimit == "" {
		result = multierror.Append(result, fmt.Errorf("API_RATE_LIMIT must not be empty"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaConversionTopic == "" {
		result = multierror.Append(result, fmt.Errorf("KAFKA_CONVERSION_TOPIC is required when KAFKA_BROKERS is set"))
	}

	return result.ErrorOrNil()
}

func parseDuration(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
