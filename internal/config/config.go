package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment selects which backend the client talks to.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Backend base addresses per environment.
const (
	DevelopmentAPIURL = "http://localhost:8000"
	ProductionAPIURL  = "https://viralityt-backend-production.up.railway.app"
)

type Config struct {
	Environment Environment `yaml:"environment" validate:"oneof=development production"`
	// APIURL overrides the per-environment base address when set, e.g. to
	// point a device build at a LAN address.
	APIURL            string        `yaml:"api_url" validate:"omitempty,url"`
	HTTPTimeout       time.Duration `yaml:"http_timeout" validate:"min=0"`
	LogLevel          string        `yaml:"log_level"`
	ServiceName       string        `yaml:"service_name"`
	MetricsListenAddr string        `yaml:"metrics_listen_addr"`
	APICACert         string        `yaml:"api_ca_cert"`
	APITLSServerName  string        `yaml:"api_tls_server_name"`
}

var validate = validator.New()

// Load builds the config from defaults and environment variables.
func Load() (*Config, error) {
	return load(nil)
}

// LoadFile reads a YAML profile and then applies environment variables on
// top of it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return load(data)
}

func load(data []byte) (*Config, error) {
	cfg := &Config{
		Environment: Development,
		LogLevel:    "info",
		ServiceName: "viralitctl",
	}

	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Environment = Environment(strings.ToLower(getEnv("VIRALIT_ENV", string(cfg.Environment))))
	cfg.APIURL = getEnv("VIRALIT_API_URL", cfg.APIURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.MetricsListenAddr = getEnv("METRICS_LISTEN_ADDR", cfg.MetricsListenAddr)
	cfg.APICACert = getEnv("VIRALIT_API_CA_CERT", cfg.APICACert)
	cfg.APITLSServerName = getEnv("VIRALIT_API_TLS_SERVER_NAME", cfg.APITLSServerName)

	if v := os.Getenv("VIRALIT_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse VIRALIT_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// BaseURL returns the backend address, resolved once at startup.
func (c *Config) BaseURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	if c.Environment == Production {
		return ProductionAPIURL
	}
	return DevelopmentAPIURL
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
