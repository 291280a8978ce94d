package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Addr              string        `yaml:"addr"`
	Environment       string        `yaml:"environment"`
	StoreDriver       string        `yaml:"store_driver"`
	StorePath         string        `yaml:"store_path"`
	DatabaseURL       string        `yaml:"database_url"`
	DataEncryptionKey string        `yaml:"data_encryption_key"`
	PayslipDir        string        `yaml:"payslip_dir"`
	RetirementAge     int           `yaml:"retirement_age"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	MetricsEnabled    bool          `yaml:"metrics_enabled"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RateLimitPerMin   int           `yaml:"rate_limit_per_minute"`
	TrustProxyHeaders bool          `yaml:"trust_proxy_headers"`
	ShutdownTimeout   time.Duration `yaml:"-"`
	ShutdownRaw       string        `yaml:"shutdown_timeout"`
	AutosaveInterval  time.Duration `yaml:"-"`
	AutosaveRaw       string        `yaml:"autosave_interval"`
}

func defaults() Config {
	return Config{
		Addr:            ":8080",
		Environment:     "development",
		StoreDriver:     StoreDriverFile,
		StorePath:       "employees.json",
		PayslipDir:      "storage/payslips",
		RetirementAge:   60,
		LogLevel:        "info",
		LogFormat:       "text",
		MetricsEnabled:  true,
		MaxBodyBytes:    1048576,
		RateLimitPerMin: 120,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads the optional YAML file named by PAYROLL_CONFIG and then
// applies environment overrides on top of it.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("PAYROLL_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.StoreDriver = strings.ToLower(getEnv("PAYROLL_STORE_DRIVER", cfg.StoreDriver))
	cfg.StorePath = getEnv("PAYROLL_STORE_PATH", cfg.StorePath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DataEncryptionKey = getEnv("DATA_ENCRYPTION_KEY", cfg.DataEncryptionKey)
	cfg.PayslipDir = getEnv("PAYSLIP_DIR", cfg.PayslipDir)
	cfg.RetirementAge = getEnvInt("RETIREMENT_AGE", cfg.RetirementAge)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.RateLimitPerMin = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMin)
	cfg.TrustProxyHeaders = getEnvBool("TRUST_PROXY_HEADERS", cfg.TrustProxyHeaders)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.AutosaveInterval = getEnvDuration("AUTOSAVE_INTERVAL", cfg.AutosaveInterval)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	if c.ShutdownRaw != "" {
		parsed, err := time.ParseDuration(c.ShutdownRaw)
		if err != nil {
			return fmt.Errorf("config: shutdown_timeout: %w", err)
		}
		c.ShutdownTimeout = parsed
	}
	if c.AutosaveRaw != "" {
		parsed, err := time.ParseDuration(c.AutosaveRaw)
		if err != nil {
			return fmt.Errorf("config: autosave_interval: %w", err)
		}
		c.AutosaveInterval = parsed
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverFile:
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("PAYROLL_STORE_PATH is required for the file store")
		}
	case StoreDriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("PAYROLL_STORE_DRIVER must be %q or %q, got %q", StoreDriverFile, StoreDriverPostgres, c.StoreDriver)
	}
	if c.RetirementAge < 16 || c.RetirementAge > 100 {
		return fmt.Errorf("RETIREMENT_AGE must be between 16 and 100")
	}
	if c.Environment == "production" && strings.TrimSpace(c.DataEncryptionKey) == "" && c.StoreDriver == StoreDriverFile {
		return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
