package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Провайдеры аутентификации
const (
	AuthProviderLocal    = "local"
	AuthProviderFirebase = "firebase"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Slots     SlotsConfig     `toml:"slots"`
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	// Provider local (JWT этого сервиса) или firebase (ID токены Firebase)
	Provider        string `toml:"provider"`
	JWTSecret       string `toml:"jwt_secret"`
	JWTIssuer       string `toml:"jwt_issuer"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`

	FirebaseProjectID       string `toml:"firebase_project_id"`
	FirebaseCredentialsFile string `toml:"firebase_credentials_file"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// SlotsConfig рабочее окно для расчета свободных слотов услуг (часы в UTC)
type SlotsConfig struct {
	DayStartHour       int `toml:"day_start_hour"`
	DayEndHour         int `toml:"day_end_hour"`
	DefaultSlotMinutes int `toml:"default_slot_minutes"`
	MinNoticeMinutes   int `toml:"min_notice_minutes"`
	AdvanceBookingDays int `toml:"advance_booking_days"`
}

// Load читает конфигурацию из TOML файла
// Секреты можно переопределить через переменные окружения (или .env файл):
// DB_PASSWORD, JWT_SECRET, REDIS_PASSWORD, FIREBASE_CREDENTIALS_FILE, HTTP_PORT
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return errors.New("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database.host and database.dbname are required")
	}

	switch c.Auth.Provider {
	case AuthProviderLocal:
		if c.Auth.JWTSecret == "" {
			return errors.New("config: auth.jwt_secret is required for local auth provider")
		}
	case AuthProviderFirebase:
		if c.Auth.FirebaseProjectID == "" {
			return errors.New("config: auth.firebase_project_id is required for firebase auth provider")
		}
	default:
		return fmt.Errorf("config: unknown auth.provider %q", c.Auth.Provider)
	}

	if c.Slots.DayStartHour < 0 || c.Slots.DayEndHour > 24 || c.Slots.DayStartHour >= c.Slots.DayEndHour {
		return errors.New("config: slots.day_start_hour must be before slots.day_end_hour")
	}
	if c.Slots.DefaultSlotMinutes <= 0 {
		return errors.New("config: slots.default_slot_minutes must be positive")
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "servemee",
		},
		Auth: AuthConfig{
			Provider:        AuthProviderLocal,
			JWTIssuer:       "servemee",
			TokenTTLMinutes: 60 * 24,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 600,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Slots: SlotsConfig{
			DayStartHour:       8,
			DayEndHour:         20,
			DefaultSlotMinutes: 60,
			MinNoticeMinutes:   30,
			AdvanceBookingDays: 30,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_FILE"); v != "" {
		cfg.Auth.FirebaseCredentialsFile = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}
