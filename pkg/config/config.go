package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// Session
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTLMin int    `envconfig:"SESSION_TTL_MIN" default:"1440"`
	CookieSecure  bool   `envconfig:"COOKIE_SECURE" default:"false"`
	// Network
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// RabbitMQ; empty disables event publishing
	RabbitURL    string `envconfig:"RABBIT_URL"`
	TurfExchange string `envconfig:"TURF_EXCHANGE" default:"turf.exchange"`
	// Observability
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Env          string `envconfig:"ENV" default:"dev"`

	Seed bool `envconfig:"SEED" default:"false"`
}

func (a App) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMin) * time.Minute
}

// LoadDotEnv reads .env into the process environment if the file exists.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func Load() (App, error) {
	var c App
	if err := LoadDotEnv(); err != nil {
		return c, err
	}
	err := envconfig.Process("", &c)
	return c, err
}
