package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "appt"
password = "secret"
dbname = "appointments"

[events]
transport = "redis"

[events.redis]
addr = "redis:6379"

[booking]
default_timezone = "Europe/Moscow"
default_horizon_days = 14
max_horizon_days = 60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, sampleTOML)
	t.Setenv("APPT_DATABASE_PASSWORD", "from-env")
	t.Setenv("APPT_BOOKING_MAX_HORIZON_DAYS", "45")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 45, cfg.Booking.MaxHorizonDays)
	assert.Equal(t, 14, cfg.Booking.DefaultHorizonDays)
	assert.Equal(t, TransportRedis, cfg.Events.Transport)
	assert.Equal(t, "appointments.", cfg.Events.Redis.ChannelPrefix)
	assert.Equal(t, "host=db port=5433 user=appt password=from-env dbname=appointments sslmode=disable", cfg.Database.DSN())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, TransportLog, cfg.Events.Transport)
	assert.Equal(t, 30, cfg.Booking.DefaultHorizonDays)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "horizon default above max", mutate: func(c *Config) { c.Booking.DefaultHorizonDays = 120 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Booking.DefaultTimezone = "Mars/Olympus" }},
		{name: "unknown transport", mutate: func(c *Config) { c.Events.Transport = "kafka" }},
		{name: "rabbitmq without url", mutate: func(c *Config) { c.Events.Transport = TransportRabbitMQ }},
		{name: "rate limit without burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
