package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported storage drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		// TTL of zero keeps sessions until logout.
		TTL           string `yaml:"ttl" env:"SESSION_TTL"`
		SweepInterval string `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL"`
	} `yaml:"session"`

	Allocation struct {
		SeatsPerRoom int    `yaml:"seats_per_room" env:"ALLOCATION_SEATS_PER_ROOM"`
		RoomPrefix   string `yaml:"room_prefix" env:"ALLOCATION_ROOM_PREFIX"`
		StartRoom    int    `yaml:"start_room" env:"ALLOCATION_START_ROOM"`
	} `yaml:"allocation"`

	Security struct {
		PasswordMinLength int     `yaml:"password_min_length" env:"SECURITY_PASSWORD_MIN_LENGTH"`
		LoginRatePerSec   float64 `yaml:"login_rate_per_sec" env:"SECURITY_LOGIN_RATE_PER_SEC"`
		LoginBurst        int     `yaml:"login_burst" env:"SECURITY_LOGIN_BURST"`
	} `yaml:"security"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		AdminUsername string `yaml:"admin_username" env:"SEED_ADMIN_USERNAME"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a YAML file, an optional .env file and the environment.
// Missing files are not an error; defaults apply.
func LoadConfig(configPath, envFile string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if envFile != "" {
		// godotenv never overrides variables already present in the environment
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "exam_admission"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.TTL = "0s"
	config.Session.SweepInterval = "1m"

	config.Allocation.SeatsPerRoom = 30
	config.Allocation.RoomPrefix = "A"
	config.Allocation.StartRoom = 101

	config.Security.PasswordMinLength = 6
	config.Security.LoginRatePerSec = 1
	config.Security.LoginBurst = 5

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Seed.AdminUsername = "admin"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	ttl, err := time.ParseDuration(config.Session.TTL)
	if err != nil {
		return fmt.Errorf("invalid session ttl: %w", err)
	}
	if ttl < 0 {
		return fmt.Errorf("session ttl cannot be negative")
	}
	if _, err := time.ParseDuration(config.Session.SweepInterval); err != nil {
		return fmt.Errorf("invalid session sweep interval: %w", err)
	}

	if config.Allocation.SeatsPerRoom <= 0 {
		return fmt.Errorf("allocation seats_per_room must be positive")
	}
	if config.Security.PasswordMinLength <= 0 {
		return fmt.Errorf("security password_min_length must be positive")
	}
	if config.Security.LoginRatePerSec <= 0 || config.Security.LoginBurst <= 0 {
		return fmt.Errorf("security login rate and burst must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
