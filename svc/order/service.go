package order

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/statemachine"
	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
	"github.com/dmitrymomot/storefront/svc/product"
)

// Service implements the order use-cases.
type Service struct {
	orders    store.Repository
	customers store.Repository
	products  store.Repository
	validator *validator.Validator
	logger    *slog.Logger
	schemas   schemas
	now       func() time.Time
}

type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock overrides the time source used for timestamps and the delivery
// date check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the order service. Customers and products are only read.
func NewService(orders, customers, products store.Repository, v *validator.Validator, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		validator: v,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		schemas:   newSchemas(v),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create places an order from {customerId, orderItems: [{productId, quantity}], deliveryDate?}.
//
// Validation runs in three stages: request shape, existence of the customer
// and every product, then stock availability per line. Products are fetched
// once and shared by the last two stages.
func (s *Service) Create(ctx context.Context, input validator.Model) (Order, error) {
	model := sanitizer.Model(input, nil)
	products := s.productsByID(model)

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", withDeliveryCheck(s.schemas.createShape, model, s.now)),
		validator.WithData("relations", s.schemas.createRelations, validator.DataContext{
			entityCustomers:    s.lookup(s.customers, customer.ColID, model["customerId"]),
			entityProductsByID: products,
		}),
		validator.Stage{Name: "stock", Prepare: func(ctx context.Context) (validator.Schema, validator.DataContext, error) {
			return stockSchema(ctx, model, products)
		}},
	); err != nil {
		return Order{}, err
	}

	now := s.now()
	rec := store.Record{
		ColID:         uuid.New().String(),
		ColCustomerID: model["customerId"],
		ColStatus:     Lifecycle.Initial().String(),
		ColItems:      itemsRecord(model),
		ColCreatedAt:  now,
		ColUpdatedAt:  now,
	}
	if d, ok := validator.ParseDate(stringOf(model["deliveryDate"])); ok {
		rec[ColDeliveryDate] = d
	}

	if err := s.orders.Insert(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "failed to create order", logger.Error(err), logger.Component("order"))
		return Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		logger.EntityID(store.String(rec, ColID)),
		logger.CustomerID(model["customerId"]),
		logger.Component("order"),
	)
	return fromRecord(rec), nil
}

// Get returns the order {id}.
func (s *Service) Get(ctx context.Context, input validator.Model) (Order, error) {
	model := sanitizer.Model(input, nil)
	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", idShape),
		validator.WithData("relations", idRelations, validator.DataContext{
			entityOrders: s.lookup(s.orders, ColID, model["id"]),
		}),
	); err != nil {
		return Order{}, err
	}

	rec, err := s.orders.Get(ctx, stringOf(model["id"]))
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return fromRecord(rec), nil
}

// UpdateStatus moves the order {id} to {status} when Lifecycle allows it.
func (s *Service) UpdateStatus(ctx context.Context, input validator.Model) (Order, error) {
	model := sanitizer.Model(input, nil)
	orders := s.lookup(s.orders, ColID, model["id"])

	if err := s.validator.Staged(ctx, model,
		validator.Pure("shape", statusShape),
		validator.WithData("relations", idRelations, validator.DataContext{entityOrders: orders}),
		validator.Stage{Name: "transition", Prepare: func(ctx context.Context) (validator.Schema, validator.DataContext, error) {
			return transitionSchema(ctx, model, orders)
		}},
	); err != nil {
		return Order{}, err
	}

	id := stringOf(model["id"])
	rec, err := s.orders.Update(ctx, id, store.Record{
		ColStatus:    model["status"],
		ColUpdatedAt: s.now(),
	})
	if err != nil {
		return Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.InfoContext(ctx, "order status changed",
		logger.EntityID(id),
		slog.Any("status", model["status"]),
		logger.Component("order"),
	)
	return fromRecord(rec), nil
}

func (s *Service) lookup(repo store.Repository, column string, value any) validator.Source {
	return validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		return repo.FindBy(ctx, column, value)
	})
}

// productsByID loads every product referenced by the order lines in one query.
func (s *Service) productsByID(model validator.Model) validator.Source {
	return validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
		var ids []any
		for _, item := range lines(model) {
			if id, ok := item["productId"].(string); ok {
				ids = append(ids, id)
			}
		}
		return s.products.FindIn(ctx, product.ColID, ids)
	})
}

// stockSchema checks every line quantity against the stock of its product.
func stockSchema(ctx context.Context, model validator.Model, products validator.Source) (validator.Schema, validator.DataContext, error) {
	records, err := products.Records(ctx)
	if err != nil {
		return nil, nil, err
	}
	byID := store.Index(records, product.ColID)

	var fields []validator.Field
	for i, item := range lines(model) {
		requested := store.ToInt(item["quantity"])
		available := store.Int(byID[stringOf(item["productId"])], product.ColStock)
		rules := validator.Rules().Custom(ruleStock, "Not enough items in stock", func(context.Context) (bool, error) {
			return requested <= available, nil
		})
		fields = append(fields, validator.Field{Path: quantityPath(i), Rules: rules.List()})
	}
	return validator.NewSchema(fields...), validator.DataContext{}, nil
}

func transitionSchema(ctx context.Context, model validator.Model, orders validator.Source) (validator.Schema, validator.DataContext, error) {
	records, err := orders.Records(ctx)
	if err != nil {
		return nil, nil, err
	}

	var current statemachine.State
	if len(records) > 0 {
		current = statemachine.State(store.String(records[0], ColStatus))
	}
	next := statemachine.State(stringOf(model["status"]))

	message := "This status change is not allowed"
	if current != "" && Lifecycle.IsFinal(current) {
		message = "This order can no longer change status"
	}

	return validator.NewSchema().Field("status", validator.Rules().Custom(ruleTransition, message,
		func(context.Context) (bool, error) {
			return Lifecycle.Can(current, next), nil
		},
	)), validator.DataContext{}, nil
}

func lines(model validator.Model) []map[string]any {
	raw, _ := model["orderItems"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if item, ok := v.(map[string]any); ok {
			out = append(out, item)
		}
	}
	return out
}

func itemsRecord(model validator.Model) []any {
	items := lines(model)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = map[string]any{
			itemProductID: item["productId"],
			itemQuantity:  store.ToInt(item["quantity"]),
		}
	}
	return out
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}
