package order

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
	"github.com/dmitrymomot/storefront/svc/product"
)

const (
	entityCustomers    = "customers"
	entityProductsByID = "productsById"
	entityOrders       = "orders"

	maxItems    = 50
	maxQuantity = 1000

	ruleStock      validator.RuleKind = "stock"
	ruleTransition validator.RuleKind = "transition"
	ruleFutureDate validator.RuleKind = "futureDate"
)

var (
	idRules           = validator.Rules().Required().IsString().Regex(validator.PatternUUIDv4)
	deliveryDateRules = validator.Rules().IsString().Date()
)

var statusValues = func() []any {
	states := Lifecycle.States()
	out := make([]any, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}()

// schemas holds the schemas that need the validator for nested rules.
type schemas struct {
	createShape     validator.Schema
	createRelations validator.Schema
}

func newSchemas(v *validator.Validator) schemas {
	item := validator.NewSchema().
		Field("productId", idRules).
		Field("quantity", validator.Rules().Required().Integer().Min(1).Max(maxQuantity))

	itemRelations := validator.NewSchema().
		Field("productId", validator.Rules().Exists(entityProductsByID, validator.Match("productId", product.ColID)))

	return schemas{
		createShape: validator.NewSchema().
			Field("customerId", idRules).
			Field("orderItems", validator.Rules().
				Required().
				Array(v, validator.Rules().Object(v, item)).
				Length(1, maxItems).
				Distinct("productId"),
			).
			Field("deliveryDate", deliveryDateRules),
		createRelations: validator.NewSchema().
			Field("customerId", validator.Rules().Exists(entityCustomers, validator.Match("customerId", customer.ColID))).
			Field("orderItems", validator.Rules().Array(v, validator.Rules().Object(v, itemRelations))),
	}
}

var idShape = validator.NewSchema().Field("id", idRules)

var idRelations = validator.NewSchema().
	Field("id", validator.Rules().Exists(entityOrders, validator.Match("id", ColID)))

var statusShape = idShape.
	Field("status", validator.Rules().Required().IsString().In(statusValues...))

// withDeliveryCheck extends shape with a check that the requested delivery
// date is today or later. The predicate closes over the request model, so the
// schema is derived per call.
func withDeliveryCheck(shape validator.Schema, model validator.Model, now func() time.Time) validator.Schema {
	return shape.Field("deliveryDate", deliveryDateRules.Custom(ruleFutureDate, "This date must not be in the past",
		func(context.Context) (bool, error) {
			s, _ := model["deliveryDate"].(string)
			d, ok := validator.ParseDate(s)
			if !ok {
				return true, nil
			}
			today := now().Truncate(24 * time.Hour)
			return !d.Before(today), nil
		},
	))
}

func quantityPath(i int) string {
	return fmt.Sprintf("orderItems.%d.quantity", i)
}
