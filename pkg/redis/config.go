package redis

import "time"

// Config describes the Redis connection used for session tokens.
type Config struct {
	ConnectionURL  string        `env:"STOREFRONT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"STOREFRONT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"STOREFRONT_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"STOREFRONT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"STOREFRONT_REDIS_KEY_PREFIX" envDefault:"storefront:"`
}
