// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} expansion
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv()
//	baseURL := cfg.Recommend.BaseURL
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the entire application configuration. It is read once at
// startup and handed to components by value; nothing re-reads it.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Engine        EngineConfig        `yaml:"engine"`
	Recommend     RecommendConfig     `yaml:"recommend"`
	Widget        WidgetConfig        `yaml:"widget"`
	Security      SecurityConfig      `yaml:"security"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port" env:"CART_API_PORT" envDefault:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CART_ALLOWED_ORIGINS" envSeparator:","`
}

// EngineConfig holds the storefront base the commerce engine serves.
type EngineConfig struct {
	StoreURL string `yaml:"store_url" env:"CART_STORE_URL" envDefault:"http://localhost:8000"`
}

// RecommendConfig holds the upstream recommendation service settings.
type RecommendConfig struct {
	BaseURL        string `yaml:"base_url" env:"RECOMMEND_BASE_URL"`
	APIKey         string `yaml:"api_key" env:"RECOMMEND_API_KEY"`
	APISecret      string `yaml:"api_secret" env:"RECOMMEND_API_SECRET"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"RECOMMEND_TIMEOUT_SECONDS" envDefault:"30"`
	TopLimit       int    `yaml:"top_limit" env:"RECOMMEND_TOP_LIMIT" envDefault:"3"`
}

// WidgetConfig holds static copy rendered into widget fragments.
type WidgetConfig struct {
	EmptyCartMessage string `yaml:"empty_cart_message" env:"WIDGET_EMPTY_CART_MSG"`
	RemoveItemLabel  string `yaml:"remove_item_label" env:"WIDGET_REMOVE_ITEM_LABEL"`
	QuantityLabel    string `yaml:"quantity_label" env:"WIDGET_QUANTITY_LABEL"`
}

// SecurityConfig holds anti-forgery token settings.
type SecurityConfig struct {
	TokenSigningKey string `yaml:"token_signing_key" env:"CART_TOKEN_KEY"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"CART_TOKEN_TTL_MINUTES" envDefault:"60"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads and parses the config file. Environment references like
// ${RECOMMEND_API_KEY} are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrEnv tries config.yaml first, then falls back to environment
// variables.
func LoadOrEnv() (*Config, error) {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries the given path first, then falls back to
// environment variables.
func LoadOrEnvWithPath(path string) (*Config, error) {
	if cfg, err := Load(path); err == nil {
		return cfg, nil
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Engine.StoreURL == "" {
		c.Engine.StoreURL = "http://localhost:8000"
	}
	if c.Recommend.TimeoutSeconds == 0 {
		c.Recommend.TimeoutSeconds = 30
	}
	if c.Recommend.TopLimit == 0 {
		c.Recommend.TopLimit = 3
	}
	if c.Security.TokenTTLMinutes == 0 {
		c.Security.TokenTTLMinutes = 60
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}
