package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceREST     = "rest"
	SourcePostgres = "postgres"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	DataSource     string        `mapstructure:"DATA_SOURCE"`
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32         `mapstructure:"DB_MIN_CONNS"`
	DBSchema       string        `mapstructure:"DB_SCHEMA"`
	AuthSigningKey string        `mapstructure:"AUTH_SIGNING_KEY"`
	AuthIssuer     string        `mapstructure:"AUTH_ISSUER"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	PatientPageSize     int `mapstructure:"PATIENT_PAGE_SIZE"`
	AppointmentPageSize int `mapstructure:"APPOINTMENT_PAGE_SIZE"`
	HistoryPageSize     int `mapstructure:"HISTORY_PAGE_SIZE"`
	PageWindow          int `mapstructure:"PAGE_WINDOW"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DATA_SOURCE", "BACKEND_URL", "BACKEND_TIMEOUT",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_SCHEMA",
	"AUTH_SIGNING_KEY", "AUTH_ISSUER", "CORS_ORIGINS", "REQUEST_TIMEOUT",
	"PATIENT_PAGE_SIZE", "APPOINTMENT_PAGE_SIZE", "HISTORY_PAGE_SIZE", "PAGE_WINDOW",
}

// Load reads the configuration from the environment and an optional .env
// file in the working directory. It does not validate; call Validate.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_SOURCE", SourceREST)
	v.SetDefault("BACKEND_URL", "http://localhost:3000")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("CORS_ORIGINS", "http://localhost:4200")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("PATIENT_PAGE_SIZE", 9)
	v.SetDefault("APPOINTMENT_PAGE_SIZE", 10)
	v.SetDefault("HISTORY_PAGE_SIZE", 3)
	v.SetDefault("PAGE_WINDOW", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// A missing .env file is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceREST:
		if c.BackendURL == "" {
			return fmt.Errorf("BACKEND_URL is required when DATA_SOURCE is %q", SourceREST)
		}
		if c.BackendTimeout <= 0 {
			return fmt.Errorf("BACKEND_TIMEOUT must be positive, got %s", c.BackendTimeout)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE is %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceREST, SourcePostgres, c.DataSource)
	}

	if !c.IsDev() && c.AuthSigningKey == "" {
		return fmt.Errorf("AUTH_SIGNING_KEY is required outside development (ENV=%q)", c.Env)
	}

	sizes := map[string]int{
		"PATIENT_PAGE_SIZE":     c.PatientPageSize,
		"APPOINTMENT_PAGE_SIZE": c.AppointmentPageSize,
		"HISTORY_PAGE_SIZE":     c.HistoryPageSize,
		"PAGE_WINDOW":           c.PageWindow,
	}
	for name, n := range sizes {
		if n <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, n)
		}
	}
	return nil
}
