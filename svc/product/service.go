package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Service implements the product catalogue use-cases.
type Service struct {
	repo       store.Repository
	validator  *validator.Validator
	logger     *slog.Logger
	currencies []string
	schemas    schemas
	now        func() time.Time
}

type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithCurrencies restricts the accepted ISO 4217 currency codes.
func WithCurrencies(codes ...string) Option {
	return func(s *Service) {
		s.currencies = codes
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the product service on top of the products repository.
func NewService(repo store.Repository, v *validator.Validator, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		validator:  v,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		currencies: DefaultCurrencies,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	allowed := make([]any, len(s.currencies))
	for i, c := range s.currencies {
		allowed[i] = sanitizer.NormalizeCurrency(c)
	}
	s.schemas = newSchemas(allowed)
	return s
}

var inputFields = sanitizer.Fields{
	"name":     sanitizer.NormalizeName,
	"currency": sanitizer.NormalizeCurrency,
}

// Create adds a product from {name, description?, price, stock, currency}.
func (s *Service) Create(ctx context.Context, input validator.Model) (Product, error) {
	model := sanitizer.Model(input, inputFields)

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", s.schemas.createShape),
		validator.Stage{Name: "relations", Prepare: func(context.Context) (validator.Schema, validator.DataContext, error) {
			return createRelations, validator.DataContext{entityProductsByName: s.byName(model["name"])}, nil
		}},
	); err != nil {
		return Product{}, err
	}

	now := s.now()
	rec := store.Record{
		ColID:        uuid.New().String(),
		ColName:      model["name"],
		ColPrice:     store.ToInt(model["price"]),
		ColStock:     store.ToInt(model["stock"]),
		ColCurrency:  model["currency"],
		ColCreatedAt: now,
		ColUpdatedAt: now,
	}
	if d, ok := model["description"].(string); ok {
		rec[ColDescription] = d
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Product{}, nameTaken()
		}
		s.logger.ErrorContext(ctx, "failed to create product", logger.Error(err), logger.Component("product"))
		return Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		logger.EntityID(store.String(rec, ColID)),
		logger.Component("product"),
	)
	return fromRecord(rec), nil
}

// Update changes any of {name, description, price, stock, currency} of the product {id}.
func (s *Service) Update(ctx context.Context, input validator.Model) (Product, error) {
	model := sanitizer.Model(input, inputFields)

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", s.schemas.updateShape),
		validator.Stage{Name: "relations", Prepare: func(context.Context) (validator.Schema, validator.DataContext, error) {
			return updateRelations, validator.DataContext{
				entityProducts:       s.byID(model["id"]),
				entityProductsByName: s.byName(model["name"]),
			}, nil
		}},
	); err != nil {
		return Product{}, err
	}

	changes := store.Record{ColUpdatedAt: s.now()}
	for _, key := range []string{ColName, ColDescription, ColCurrency} {
		if v, ok := model[key]; ok && v != nil {
			changes[key] = v
		}
	}
	for _, key := range []string{ColPrice, ColStock} {
		if v, ok := model[key]; ok && v != nil {
			changes[key] = store.ToInt(v)
		}
	}

	id, _ := model["id"].(string)
	rec, err := s.repo.Update(ctx, id, changes)
	switch {
	case errors.Is(err, store.ErrConflict):
		return Product{}, nameTaken()
	case err != nil:
		return Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return fromRecord(rec), nil
}

// Get returns the product {id}.
func (s *Service) Get(ctx context.Context, input validator.Model) (Product, error) {
	model := sanitizer.Model(input, nil)
	if err := s.checkID(ctx, model); err != nil {
		return Product{}, err
	}

	id, _ := model["id"].(string)
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return fromRecord(rec), nil
}

// List returns the whole catalogue in creation order.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	out := make([]Product, len(records))
	for i, rec := range records {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

// Delete removes the product {id}.
func (s *Service) Delete(ctx context.Context, input validator.Model) error {
	model := sanitizer.Model(input, nil)
	if err := s.checkID(ctx, model); err != nil {
		return err
	}

	id, _ := model["id"].(string)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *Service) checkID(ctx context.Context, model validator.Model) error {
	return s.validator.Staged(ctx, model,
		validator.Pure("shape", idShape),
		validator.WithData("relations", idRelations, validator.DataContext{entityProducts: s.byID(model["id"])}),
	)
}

func (s *Service) byID(id any) validator.Source {
	return validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		return s.repo.FindBy(ctx, ColID, id)
	})
}

func (s *Service) byName(name any) validator.Source {
	return validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		return s.repo.FindBy(ctx, ColName, name)
	})
}

func nameTaken() error {
	return validator.Reject("name", validator.KindUnique, "This value is already in use",
		map[string]any{"dataEntity": entityProductsByName})
}
