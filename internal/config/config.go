package config

import "time"

// Config represents the complete application configuration, assembled from
// built-in defaults, an optional config file, environment variables, and
// command-line flags (highest precedence last).
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	AI      AIConfig      `mapstructure:"ai"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// AIConfig selects and configures the completion provider.
//
// API keys are read from the environment (GEMINI_API_KEY, OPENAI_API_KEY),
// never from the config file.
type AIConfig struct {
	Provider string        `mapstructure:"provider"` // "gemini" or "openai"
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"` // openai-compatible endpoints only
	Timeout  time.Duration `mapstructure:"timeout"`
}

// HistoryConfig bounds the generation history.
type HistoryConfig struct {
	// MaxItems caps the retained history; the oldest rows are evicted.
	MaxItems int `mapstructure:"max_items"`
}

// LoggingConfig contains logging configuration.
// Valid levels: trace, debug, info, warn, error.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
