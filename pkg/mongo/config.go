package mongo

import "time"

type Config struct {
	ConnectionURL   string        `env:"STOREFRONT_MONGO_URL,required"`
	Database        string        `env:"STOREFRONT_MONGO_DATABASE" envDefault:"storefront"`
	ConnectTimeout  time.Duration `env:"STOREFRONT_MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"STOREFRONT_MONGO_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"STOREFRONT_MONGO_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"STOREFRONT_MONGO_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"STOREFRONT_MONGO_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"STOREFRONT_MONGO_RETRY_INTERVAL" envDefault:"2s"`
}
