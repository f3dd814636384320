package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog source kinds accepted by CATALOG_SOURCE.
const (
	SourceFile    = "file"
	SourceHTTP    = "http"
	SourceS3      = "s3"
	SourceMongo   = "mongo"
	SourceMemory  = "memory"
	SourceOffline = "offline"
)

// RateLimitConfig allows Requests per Interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Enabled reports whether limiting is on.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.Interval > 0
}

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env       string
	HTTPAddr  string
	LogLevel  slog.Level
	AssetsDir string

	CatalogSource    string
	CatalogPath      string
	CatalogURL       string
	CatalogTimeout   time.Duration
	CatalogObjectKey string
	CatalogStrict    bool
	CatalogSeed      bool

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	MongoURI string
	MongoDB  string

	KafkaBrokers       []string
	KafkaTopic         string
	KafkaTopicPrefix   string
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration

	FilterDebounce    time.Duration
	RateLimit         RateLimitConfig
	CleaningFee       int64
	ServiceFeePercent int64
}

// Load reads .env when present and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		AssetsDir:        getEnv("ASSETS_DIR", "assets"),
		CatalogSource:    strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		CatalogPath:      getEnv("CATALOG_PATH", "assets/data/listings.json"),
		CatalogURL:       os.Getenv("CATALOG_URL"),
		CatalogObjectKey: getEnv("CATALOG_OBJECT_KEY", "data/listings.json"),
		S3Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:9000"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:      getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:         getEnv("S3_BUCKET", "stays-catalog"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "stays"),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "stays.notifications"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if cfg.CatalogTimeout, err = parseDurationEnv("CATALOG_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FilterDebounce, err = parseDurationEnv("FILTER_DEBOUNCE", 150*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.CatalogStrict, err = parseBoolEnv("CATALOG_STRICT", false); err != nil {
		return Config{}, err
	}
	if cfg.CatalogSeed, err = parseBoolEnv("CATALOG_SEED", false); err != nil {
		return Config{}, err
	}
	if cfg.S3UseSSL, err = parseBoolEnv("S3_USE_SSL", false); err != nil {
		return Config{}, err
	}
	if cfg.CleaningFee, err = parseIntEnv("CLEANING_FEE", 150); err != nil {
		return Config{}, err
	}
	if cfg.ServiceFeePercent, err = parseIntEnv("SERVICE_FEE_PERCENT", 20); err != nil {
		return Config{}, err
	}
	if cfg.CleaningFee < 0 || cfg.ServiceFeePercent < 0 {
		return Config{}, fmt.Errorf("fees must not be negative")
	}

	for _, raw := range strings.Split(getEnv("RETRY_BACKOFF", "1s,5s,30s"), ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT", "20/s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT value: %w", err)
	}
	cfg.RateLimit = rl

	if err := cfg.validateSource(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validateSource() error {
	switch c.CatalogSource {
	case SourceFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required for CATALOG_SOURCE=file")
		}
	case SourceHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL is required for CATALOG_SOURCE=http")
		}
	case SourceS3:
		if c.S3Bucket == "" || c.CatalogObjectKey == "" {
			return fmt.Errorf("S3_BUCKET and CATALOG_OBJECT_KEY are required for CATALOG_SOURCE=s3")
		}
	case SourceMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for CATALOG_SOURCE=mongo")
		}
	case SourceMemory, SourceOffline:
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}

func parseIntEnv(key string, def int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}

// parseRateLimit reads "<requests>/<unit>"; "off" disables limiting.
func parseRateLimit(value string) (RateLimitConfig, error) {
	if strings.EqualFold(strings.TrimSpace(value), "off") {
		return RateLimitConfig{}, nil
	}
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}
	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}
	var interval time.Duration
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", parts[1])
	}
	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}
