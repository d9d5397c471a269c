package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the market server.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":9000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	DB DBConfig

	AuctionDuration time.Duration `env:"AUCTION_DURATION" envDefault:"24h"`

	ImageDir     string `env:"IMAGE_DIR" envDefault:"./uploads"`
	ImageBaseURL string `env:"IMAGE_BASE_URL" envDefault:"/images"`

	Payment PaymentConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"market"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type PaymentConfig struct {
	// GatewayURL empty means the in-memory sandbox gateway is used.
	GatewayURL         string        `env:"PAYMENT_GATEWAY_URL"`
	SecretKey          string        `env:"PAYMENT_SECRET_KEY"`
	Timeout            time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"10s"`
	OrderIDMaxAttempts uint64        `env:"ORDER_ID_MAX_ATTEMPTS" envDefault:"5"`
	OrderIDRetryDelay  time.Duration `env:"ORDER_ID_RETRY_DELAY" envDefault:"1s"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.Payment.OrderIDMaxAttempts == 0 {
		return nil, fmt.Errorf("ORDER_ID_MAX_ATTEMPTS must be greater than zero")
	}
	return &cfg, nil
}

// PostgresDSN builds the connection url used by pgx and golang-migrate.
func (c DBConfig) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}
