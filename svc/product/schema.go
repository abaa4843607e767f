package product

import (
	"github.com/dmitrymomot/storefront/pkg/validator"
)

const (
	entityProducts       = "products"
	entityProductsByName = "productsByName"

	maxStock = 1_000_000
	// maxPrice is in minor units and stays below 2^53, so every accepted
	// price survives the JSON float64 round trip exactly.
	maxPrice = 100_000_000_000
)

var (
	idRules          = validator.Rules().Required().IsString().Regex(validator.PatternUUIDv4)
	nameRules        = validator.Rules().IsString().Length(2, 200)
	descriptionRules = validator.Rules().IsString().Length(0, 2000)
	priceRules       = validator.Rules().Integer().Min(0).Max(maxPrice)
	stockRules       = validator.Rules().Integer().Min(0).Max(maxStock)

	matchName = []validator.Prop{validator.Match("name", ColName)}
	matchID   = validator.Match("id", ColID)
)

// schemas holds the schemas that depend on the configured currencies.
type schemas struct {
	createShape validator.Schema
	updateShape validator.Schema
}

func newSchemas(currencies []any) schemas {
	currencyRules := validator.Rules().IsString().In(currencies...)

	return schemas{
		createShape: validator.NewSchema().
			Field("name", validator.Rules().Required().With(nameRules.List()...)).
			Field("description", descriptionRules).
			Field("price", validator.Rules().Required().With(priceRules.List()...)).
			Field("stock", validator.Rules().Required().With(stockRules.List()...)).
			Field("currency", validator.Rules().Required().With(currencyRules.List()...)),
		updateShape: validator.NewSchema().
			Field("id", idRules).
			Field("name", nameRules).
			Field("description", descriptionRules).
			Field("price", priceRules).
			Field("stock", stockRules).
			Field("currency", currencyRules),
	}
}

var createRelations = validator.NewSchema().
	Field("name", validator.Rules().Unique(entityProductsByName, matchName))

var updateRelations = validator.NewSchema().
	Field("id", validator.Rules().Exists(entityProducts, matchID)).
	Field("name", validator.Rules().Unique(entityProductsByName, matchName, matchID))

var idShape = validator.NewSchema().Field("id", idRules)

var idRelations = validator.NewSchema().
	Field("id", validator.Rules().Exists(entityProducts, matchID))
