package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"carbook/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Session    SessionConfig    `yaml:"session"`
	Auth       AuthConfig       `yaml:"auth"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	TemplatesGlob string `yaml:"templates_glob"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	Secure     bool   `yaml:"secure"`
}

type AuthConfig struct {
	// AdminEmails are promoted to the admin role on registration.
	AdminEmails    []string             `yaml:"admin_emails"`
	LoginRateLimit LoginRateLimitConfig `yaml:"login_rate_limit"`
	MinPasswordLen int                  `yaml:"min_password_len"`
}

type LoginRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; real environment wins when both are present.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VAR} references before parsing.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Session.TTLSeconds <= 0 {
		return errors.New("session ttl must be positive")
	}

	for _, email := range c.Auth.AdminEmails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("invalid admin email: %q", email)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "carbook"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.TemplatesGlob == "" {
		c.Server.TemplatesGlob = "web/templates/*.html"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "carbook_session"
	}
	if c.Session.TTLSeconds == 0 {
		c.Session.TTLSeconds = models.DefaultSessionTTL
	}
	if c.Auth.LoginRateLimit.RPS == 0 {
		c.Auth.LoginRateLimit.RPS = 1
	}
	if c.Auth.LoginRateLimit.Burst == 0 {
		c.Auth.LoginRateLimit.Burst = 5
	}
	if c.Auth.MinPasswordLen == 0 {
		c.Auth.MinPasswordLen = 8
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
