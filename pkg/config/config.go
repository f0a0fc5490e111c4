package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SETTLELEDGER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Metrics MetricsConfig
	GCP     GCPConfig
	Events  EventsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Events.validate(cfg.GCP); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SETTLELEDGER_APP_ENV" default:"dev"`
	Port         string `envconfig:"SETTLELEDGER_APP_PORT" default:"7050"`
	LogLevel     string `envconfig:"SETTLELEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SETTLELEDGER_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"SETTLELEDGER_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SETTLELEDGER_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SETTLELEDGER_DB_DSN"`

	MaxOpenConns    int           `envconfig:"SETTLELEDGER_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SETTLELEDGER_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SETTLELEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SETTLELEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) normalize() error {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	switch driver {
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("SETTLELEDGER_DB_DSN is required for the postgres driver")
		}
	case DriverSQLite:
		if db.DSN == "" {
			db.DSN = "file:settleledger.db?_pragma=busy_timeout(5000)"
		}
	default:
		return fmt.Errorf("unsupported db driver %q (postgres or sqlite)", db.Driver)
	}
	db.Driver = driver
	return nil
}

type MetricsConfig struct {
	Enabled bool `envconfig:"SETTLELEDGER_METRICS_ENABLED" default:"true"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"SETTLELEDGER_GCP_PROJECT_ID"`
}

// EventsConfig controls the relay of committed contract events.
type EventsConfig struct {
	PubSubEnabled bool   `envconfig:"SETTLELEDGER_EVENTS_PUBSUB_ENABLED" default:"false"`
	Topic         string `envconfig:"SETTLELEDGER_EVENTS_TOPIC" default:"settlement-events"`
}

func (e EventsConfig) validate(gcp GCPConfig) error {
	if !e.PubSubEnabled {
		return nil
	}
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return fmt.Errorf("SETTLELEDGER_GCP_PROJECT_ID is required when the pubsub event relay is enabled")
	}
	if strings.TrimSpace(e.Topic) == "" {
		return fmt.Errorf("SETTLELEDGER_EVENTS_TOPIC is required when the pubsub event relay is enabled")
	}
	return nil
}
