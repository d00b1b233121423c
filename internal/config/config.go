package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// Config is the full service configuration, loaded once at process start
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Logs     LogsConfig     `toml:"logs"`
	Audit    AuditConfig    `toml:"audit"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Limits   LimitsConfig   `toml:"limits"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN assembles the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type AuditConfig struct {
	File string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// LimitsConfig holds the per-category daily booking limits
type LimitsConfig struct {
	NewPatient      int `toml:"new_patient"`
	Review          int `toml:"review"`
	ChronicFollowUp int `toml:"chronic_follow_up"`
}

// CategoryLimits converts the config section into the domain limits map
func (l LimitsConfig) CategoryLimits() domain.CategoryLimits {
	return domain.CategoryLimits{
		domain.CategoryNewPatient:      l.NewPatient,
		domain.CategoryReview:          l.Review,
		domain.CategoryChronicFollowUp: l.ChronicFollowUp,
	}
}

// Load reads and validates the TOML configuration file
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 480, // 8 hours
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Audit: AuditConfig{
			File: "logs/audit.log",
		},
		Metrics: MetricsConfig{
			ServiceName: "opd-booking-service",
			Path:        "/metrics",
		},
		Limits: LimitsConfig{
			NewPatient:      20,
			Review:          40,
			ChronicFollowUp: 40,
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: auth.jwt_secret is required")
	}
	if cfg.Database.User == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.user and database.dbname are required")
	}
	if cfg.Limits.NewPatient <= 0 || cfg.Limits.Review <= 0 || cfg.Limits.ChronicFollowUp <= 0 {
		return nil, fmt.Errorf("config: category limits must be positive")
	}

	return cfg, nil
}
