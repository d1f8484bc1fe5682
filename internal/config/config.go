package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "APPT"

// Транспорты событий
const (
	TransportNone     = "none"
	TransportLog      = "log"
	TransportRabbitMQ = "rabbitmq"
	TransportRedis    = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server           ServerConfig           `toml:"server" split_words:"true"`
	Database         DatabaseConfig         `toml:"database" split_words:"true"`
	Logs             LogsConfig             `toml:"logs" split_words:"true"`
	Metrics          MetricsConfig          `toml:"metrics" split_words:"true"`
	WorkspaceService WorkspaceServiceConfig `toml:"workspace_service" split_words:"true"`
	Events           EventsConfig           `toml:"events" split_words:"true"`
	Booking          BookingConfig          `toml:"booking" split_words:"true"`
	RateLimit        RateLimitConfig        `toml:"rate_limit" split_words:"true"`
	CORS             CORSConfig             `toml:"cors" split_words:"true"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
}

// WorkspaceServiceConfig пустой URL отключает клиента, используется booking.default_timezone
type WorkspaceServiceConfig struct {
	URL      string `toml:"url" split_words:"true"`
	Timeout  int    `toml:"timeout" split_words:"true"`   // секунды
	CacheTTL int    `toml:"cache_ttl" split_words:"true"` // секунды
}

type EventsConfig struct {
	Transport   string         `toml:"transport" split_words:"true"`
	QueueSize   int            `toml:"queue_size" split_words:"true"`
	Workers     int            `toml:"workers" split_words:"true"`
	SendTimeout int            `toml:"send_timeout" split_words:"true"` // секунды
	RabbitMQ    RabbitMQConfig `toml:"rabbitmq" split_words:"true"`
	Redis       RedisConfig    `toml:"redis" split_words:"true"`
}

type RabbitMQConfig struct {
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

type RedisConfig struct {
	Addr          string `toml:"addr" split_words:"true"`
	Password      string `toml:"password" split_words:"true"`
	DB            int    `toml:"db" split_words:"true"`
	ChannelPrefix string `toml:"channel_prefix" split_words:"true"`
}

type BookingConfig struct {
	DefaultTimezone    string `toml:"default_timezone" split_words:"true"`
	DefaultHorizonDays int    `toml:"default_horizon_days" split_words:"true"`
	MaxHorizonDays     int    `toml:"max_horizon_days" split_words:"true"`
	TxMaxAttempts      int    `toml:"tx_max_attempts" split_words:"true"`
}

// Location часовой пояс по умолчанию для арендаторов без настройки
func (b BookingConfig) Location() (*time.Location, error) {
	if b.DefaultTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.DefaultTimezone)
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" split_words:"true"`
	RequestsPerSecond float64 `toml:"requests_per_second" split_words:"true"`
	Burst             int     `toml:"burst" split_words:"true"`
	VisitorTTL        int     `toml:"visitor_ttl" split_words:"true"` // секунды
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
	AllowedMethods []string `toml:"allowed_methods" split_words:"true"`
	AllowedHeaders []string `toml:"allowed_headers" split_words:"true"`
}

// Default значения, поверх которых читается config.toml
func Default() Config {
	return Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "appointment_service",
			Path:        "/metrics",
		},
		WorkspaceService: WorkspaceServiceConfig{Timeout: 3, CacheTTL: 600},
		Events: EventsConfig{
			Transport:   TransportLog,
			QueueSize:   1024,
			Workers:     2,
			SendTimeout: 5,
			RabbitMQ:    RabbitMQConfig{Exchange: "appointments"},
			Redis:       RedisConfig{Addr: "localhost:6379", ChannelPrefix: "appointments."},
		},
		Booking: BookingConfig{
			DefaultTimezone:    "UTC",
			DefaultHorizonDays: 30,
			MaxHorizonDays:     90,
			TxMaxAttempts:      3,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			Burst:             10,
			VisitorTTL:        600,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Tenant-ID"},
		},
	}
}

// Load читает config.toml, затем .env (если есть) и переменные окружения APPT_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Booking.DefaultHorizonDays <= 0 || c.Booking.MaxHorizonDays < c.Booking.DefaultHorizonDays {
		return fmt.Errorf("%w: booking horizon default=%d max=%d", ErrInvalidConfig,
			c.Booking.DefaultHorizonDays, c.Booking.MaxHorizonDays)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.default_timezone=%q: %v", ErrInvalidConfig, c.Booking.DefaultTimezone, err)
	}

	switch c.Events.Transport {
	case TransportNone, TransportLog:
	case TransportRabbitMQ:
		if c.Events.RabbitMQ.URL == "" || c.Events.RabbitMQ.Exchange == "" {
			return fmt.Errorf("%w: events.rabbitmq url and exchange are required", ErrInvalidConfig)
		}
	case TransportRedis:
		if c.Events.Redis.Addr == "" {
			return fmt.Errorf("%w: events.redis.addr is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: events.transport=%q", ErrInvalidConfig, c.Events.Transport)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	return nil
}
