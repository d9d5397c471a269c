package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.AuctionDuration)
	assert.Equal(t, uint64(5), cfg.Payment.OrderIDMaxAttempts)
	assert.Equal(t, time.Second, cfg.Payment.OrderIDRetryDelay)
	assert.Empty(t, cfg.Payment.GatewayURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("AUCTION_DURATION", "2h")
	t.Setenv("ORDER_ID_RETRY_DELAY", "10ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.AuctionDuration)
	assert.Equal(t, 10*time.Millisecond, cfg.Payment.OrderIDRetryDelay)
}

func TestLoad_RejectsZeroAttempts(t *testing.T) {
	t.Setenv("ORDER_ID_MAX_ATTEMPTS", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "market", Password: "p@ss", Name: "market", SSLMode: "disable"}

	assert.Equal(t, "postgres://market:p%40ss@db:5432/market?sslmode=disable", c.PostgresDSN())
}
