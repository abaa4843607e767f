package customer

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
)

// Service implements the customer use-cases.
type Service struct {
	repo       store.Repository
	validator  *validator.Validator
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time
}

type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the customer service on top of the customers repository.
func NewService(repo store.Repository, v *validator.Validator, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		validator:  v,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		bcryptCost: bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var inputFields = sanitizer.Fields{
	"email": sanitizer.NormalizeEmail,
	"name":  sanitizer.NormalizeName,
}

// Create registers a customer from {name, email, password}.
func (s *Service) Create(ctx context.Context, input validator.Model) (Customer, error) {
	model := sanitizer.Model(input, inputFields)

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", createShape),
		validator.Stage{Name: "relations", Prepare: func(context.Context) (validator.Schema, validator.DataContext, error) {
			return createRelations, validator.DataContext{
				entityCustomersByEmail: s.byEmail(model["email"]),
			}, nil
		}},
	); err != nil {
		return Customer{}, err
	}

	password, _ := model["password"].(string)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return Customer{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	rec := store.Record{
		ColID:           uuid.New().String(),
		ColName:         model["name"],
		ColEmail:        model["email"],
		ColPasswordHash: string(hash),
		ColCreatedAt:    now,
		ColUpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Customer{}, emailTaken()
		}
		s.logger.ErrorContext(ctx, "failed to create customer", logger.Error(err), logger.Component("customer"))
		return Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.InfoContext(ctx, "customer created",
		logger.CustomerID(store.String(rec, ColID)),
		logger.Component("customer"),
	)
	return fromRecord(rec), nil
}

// Update changes the name and/or email of the customer {id, name?, email?}.
func (s *Service) Update(ctx context.Context, input validator.Model) (Customer, error) {
	model := sanitizer.Model(input, inputFields)

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", updateShape),
		validator.Stage{Name: "relations", Prepare: func(context.Context) (validator.Schema, validator.DataContext, error) {
			return updateRelations, validator.DataContext{
				entityCustomers:        s.byID(model["id"]),
				entityCustomersByEmail: s.byEmail(model["email"]),
			}, nil
		}},
	); err != nil {
		return Customer{}, err
	}

	changes := store.Record{ColUpdatedAt: s.now()}
	for _, key := range []string{ColName, ColEmail} {
		if v, ok := model[key]; ok && v != nil {
			changes[key] = v
		}
	}

	id, _ := model["id"].(string)
	rec, err := s.repo.Update(ctx, id, changes)
	switch {
	case errors.Is(err, store.ErrConflict):
		return Customer{}, emailTaken()
	case err != nil:
		return Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}
	return fromRecord(rec), nil
}

// Get returns the customer {id}.
func (s *Service) Get(ctx context.Context, input validator.Model) (Customer, error) {
	model := sanitizer.Model(input, nil)
	if err := s.checkID(ctx, model); err != nil {
		return Customer{}, err
	}

	id, _ := model["id"].(string)
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return fromRecord(rec), nil
}

// Delete removes the customer {id}. Customers with orders cannot be deleted
// and yield store.ErrConflict.
func (s *Service) Delete(ctx context.Context, input validator.Model) error {
	model := sanitizer.Model(input, nil)
	if err := s.checkID(ctx, model); err != nil {
		return err
	}

	id, _ := model["id"].(string)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.InfoContext(ctx, "customer deleted", logger.CustomerID(id), logger.Component("customer"))
	return nil
}

func (s *Service) checkID(ctx context.Context, model validator.Model) error {
	return s.validator.Staged(ctx, model,
		validator.Pure("shape", idShape),
		validator.Stage{Name: "relations", Prepare: func(context.Context) (validator.Schema, validator.DataContext, error) {
			return idRelations, validator.DataContext{entityCustomers: s.byID(model["id"])}, nil
		}},
	)
}

func (s *Service) byID(id any) validator.Source {
	return validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		return s.repo.FindBy(ctx, ColID, id)
	})
}

func (s *Service) byEmail(email any) validator.Source {
	return validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		return s.repo.FindBy(ctx, ColEmail, email)
	})
}

func emailTaken() error {
	return validator.Reject("email", validator.KindUnique, "This value is already in use",
		map[string]any{"dataEntity": entityCustomersByEmail})
}
