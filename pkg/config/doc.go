// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing. Every configuration type is
// parsed once and cached for the lifetime of the process, so packages can call
// Load for their own config struct without coordinating with each other:
//
//	type Config struct {
//	    Addr string `env:"STOREFRONT_HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// LoadEnv reads additional .env files (for example .env.local) before the
// first Load. ResetCache drops cached values and is meant for tests.
//
// # Errors
//
// Failures wrap ErrParsingConfig or ErrLoadingEnvFile and can be matched with
// errors.Is.
package config
