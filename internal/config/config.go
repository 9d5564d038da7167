package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
	Session  SessionConfig  `yaml:"session"`
	AWS      AWSConfig      `yaml:"aws"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port" env:"PORT"`
	Host string `yaml:"host" env:"HOST"`
}

// StorageConfig selects the persistence backing.
// Backend is one of "sqlite", "postgres" or "file"; DataDir holds the
// SQLite database or the JSON snapshot files for the file backend.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND"`
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`
}

// DatabaseConfig holds PostgreSQL configuration for the postgres backend
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
}

// AdminConfig holds the single admin credential supplied at startup
type AdminConfig struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// SessionConfig holds session signing and expiry configuration
type SessionConfig struct {
	Secret   string `yaml:"secret" env:"SESSION_SECRET"`
	TTLHours int    `yaml:"ttl_hours" env:"SESSION_TTL_HOURS"`
}

// AWSConfig holds optional S3 image offload configuration
type AWSConfig struct {
	Enabled   bool   `yaml:"enabled" env:"S3_ENABLED"`
	Region    string `yaml:"region" env:"S3_REGION"`
	S3Bucket  string `yaml:"s3_bucket" env:"S3_BUCKET"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Load reads configuration from a YAML file and overlays environment
// variables. A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: 5000, Host: "0.0.0.0"},
		Storage: StorageConfig{Backend: "sqlite", DataDir: "."},
		Admin:   AdminConfig{Username: "admin"},
		Session: SessionConfig{TTLHours: 24},
		Log:     LogConfig{Level: "info"},
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "sqlite", "postgres", "file":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("admin username and password are required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
