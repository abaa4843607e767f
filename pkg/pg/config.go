package pg

import "time"

// Config describes the Postgres pool and migration settings.
type Config struct {
	ConnectionString  string        `env:"STOREFRONT_PG_DSN,required"`
	MaxOpenConns      int32         `env:"STOREFRONT_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"STOREFRONT_PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"STOREFRONT_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"STOREFRONT_PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"STOREFRONT_PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"STOREFRONT_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"STOREFRONT_PG_RETRY_INTERVAL" envDefault:"2s"`

	MigrationsTable string `env:"STOREFRONT_PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
