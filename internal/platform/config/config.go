package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration, parsed from the environment.
type Config struct {
	Server   Server
	Database Database
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Trade    Trade
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"FES_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"FES_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database configures the document store. An empty URL selects the
// in-memory stores.
type Database struct {
	URL          string `env:"DATABASE_URL"`
	MaxOpenConns int    `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
}

// RedisConfig configures the live feature-flag source.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// Trade configures reporting to the external trade system.
type Trade struct {
	QueueURL            string        `env:"TRADE_QUEUE_URL"`
	QueueName           string        `env:"TRADE_QUEUE_NAME" envDefault:"fes-trade-reports"`
	QueueEnabled        bool          `env:"TRADE_QUEUE_ENABLED" envDefault:"false"`
	PublishTimeout      time.Duration `env:"TRADE_PUBLISH_TIMEOUT" envDefault:"30s"`
	IntegrationFlag     string        `env:"TRADE_INTEGRATION_FLAG" envDefault:"trade_queue_integration"`
	IntegrationDefault  bool          `env:"TRADE_INTEGRATION_DEFAULT" envDefault:"false"`
	ReferenceServiceURL string        `env:"REFERENCE_SERVICE_URL" envDefault:"http://localhost:9000"`
}

// FromEnv parses Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
