package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"http_server"`
	Database DatabaseConfig `mapstructure:"database"`
	Security SecurityConfig `mapstructure:"security"`
	Insight  InsightConfig  `mapstructure:"insight"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type SecurityConfig struct {
	SessionSecret    string        `mapstructure:"session_secret"`
	SessionDuration  time.Duration `mapstructure:"session_duration"`
	BCryptCost       int           `mapstructure:"bcrypt_cost"`
	LockoutThreshold int           `mapstructure:"lockout_threshold"`
	LockoutDuration  time.Duration `mapstructure:"lockout_duration"`
}

type InsightConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("database source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

// DriverOrDefault returns the configured driver, defaulting to sqlite for
// local deployments.
func (c *DatabaseConfig) DriverOrDefault() string {
	if c.Driver == "" {
		return "sqlite"
	}
	return c.Driver
}

func (c *SecurityConfig) Validate() error {
	if len(c.SessionSecret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	if c.BCryptCost != 0 && (c.BCryptCost < 4 || c.BCryptCost > 31) {
		return errors.New("bcrypt_cost must be between 4 and 31")
	}
	if c.LockoutThreshold < 0 {
		return errors.New("lockout_threshold cannot be negative")
	}
	return nil
}

// Lockout knobs default to the documented policy: three failed attempts lock
// the account for fifteen minutes.
func (c *SecurityConfig) LockoutThresholdOrDefault() int {
	if c.LockoutThreshold == 0 {
		return 3
	}
	return c.LockoutThreshold
}

func (c *SecurityConfig) LockoutDurationOrDefault() time.Duration {
	if c.LockoutDuration == 0 {
		return 15 * time.Minute
	}
	return c.LockoutDuration
}

func (c *SecurityConfig) SessionDurationOrDefault() time.Duration {
	if c.SessionDuration == 0 {
		return 24 * time.Hour
	}
	return c.SessionDuration
}
