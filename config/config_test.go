package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http:
  address: ":8080"
  swagger_dir: "./swagger"
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: aeroreserve
  ssl_mode: disable
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  booking_topic: bookings
  refund_topic: refunds
  group_id: notifier
booking:
  hold_ttl_minutes: 15
  flights_cache_ttl_seconds: 60
worker:
  expiration_sweep_minutes: 5
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=aeroreserve sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bookings", cfg.Kafka.BookingTopic)
	assert.Equal(t, "refunds", cfg.Kafka.RefundTopic)
	assert.Equal(t, 15, cfg.Booking.HoldTTLMinutes)
	assert.Equal(t, 5, cfg.Worker.ExpirationSweepMinutes)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
