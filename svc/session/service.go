package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
)

// Service issues and resolves customer sessions.
type Service struct {
	customers store.Repository
	tokens    TokenStore
	validator *validator.Validator
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time
}

type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithTTL sets how long issued tokens stay valid.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the session service. Customers are only read.
func NewService(customers store.Repository, tokens TokenStore, v *validator.Validator, opts ...Option) *Service {
	s := &Service{
		customers: customers,
		tokens:    tokens,
		validator: v,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ttl:       24 * time.Hour,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var inputFields = sanitizer.Fields{
	"email": sanitizer.NormalizeEmail,
}

// Create signs a customer in with {email, password}.
//
// The password is compared only after the email matched a customer, and the
// customer record fetched for that check is reused for the comparison.
func (s *Service) Create(ctx context.Context, input validator.Model) (Session, error) {
	model := sanitizer.Model(input, inputFields)
	password, _ := model["password"].(string)

	customers := validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		return s.customers.FindBy(ctx, customer.ColEmail, model["email"])
	})

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", createShape),
		validator.WithData("relations", createRelations, validator.DataContext{entityCustomersByEmail: customers}),
		validator.Stage{Name: "credentials", Prepare: func(ctx context.Context) (validator.Schema, validator.DataContext, error) {
			return credentialsSchema(ctx, password, customers)
		}},
	); err != nil {
		return Session{}, err
	}

	records, err := customers.Records(ctx)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:      uuid.New().String(),
		CustomerID: store.String(records[0], customer.ColID),
		ExpiresAt:  s.now().Add(s.ttl),
	}
	if err := s.tokens.Save(ctx, sess); err != nil {
		s.logger.ErrorContext(ctx, "failed to store session", logger.Error(err), logger.Component("session"))
		return Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.InfoContext(ctx, "session created",
		logger.CustomerID(sess.CustomerID),
		logger.Component("session"),
	)
	return sess, nil
}

// Resolve returns the live session behind token.
func (s *Service) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}
	sess, err := s.tokens.Find(ctx, token)
	if err != nil {
		return Session{}, err
	}
	if !sess.ExpiresAt.After(s.now()) {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// Revoke invalidates token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "session revoked", logger.Component("session"))
	return nil
}

func credentialsSchema(ctx context.Context, password string, customers validator.Source) (validator.Schema, validator.DataContext, error) {
	records, err := customers.Records(ctx)
	if err != nil {
		return nil, nil, err
	}

	var hash string
	if len(records) > 0 {
		hash = store.String(records[0], customer.ColPasswordHash)
	}

	return validator.NewSchema().Field("password", validator.Rules().Custom(ruleCredentials,
		"Invalid email or password",
		func(context.Context) (bool, error) {
			err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
			switch {
			case err == nil:
				return true, nil
			case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
				return false, nil
			default:
				return false, fmt.Errorf("failed to compare password: %w", err)
			}
		},
	)), validator.DataContext{}, nil
}
