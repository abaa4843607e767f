// Package session signs customers in with email and password and tracks the
// issued bearer tokens.
package session

import (
	"context"
	"time"
)

// Config holds authentication settings. BcryptCost is shared with the
// customer service that produces the hashes checked here.
type Config struct {
	TokenTTL   time.Duration `env:"STOREFRONT_SESSION_TTL" envDefault:"24h"`
	BcryptCost int           `env:"STOREFRONT_BCRYPT_COST" envDefault:"10"`
}

// Session is an issued access token.
type Session struct {
	Token      string    `json:"token"`
	CustomerID string    `json:"customerId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// TokenStore keeps issued sessions until they expire.
type TokenStore interface {
	Save(ctx context.Context, s Session) error
	// Find returns ErrSessionNotFound for unknown or expired tokens.
	Find(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}
