package customer

import (
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// Data entities the relational stages read.
const (
	entityCustomers        = "customers"
	entityCustomersByEmail = "customersByEmail"
)

var (
	idRules    = validator.Rules().Required().IsString().Regex(validator.PatternUUIDv4)
	nameRules  = validator.Rules().IsString().Length(2, 100).Regex(validator.PatternName)
	emailRules = validator.Rules().IsString().Length(3, 254).Regex(validator.PatternEmail)

	matchEmail = []validator.Prop{validator.Match("email", ColEmail)}
	matchID    = validator.Match("id", ColID)
)

var createShape = validator.NewSchema().
	Field("name", validator.Rules().Required().With(nameRules.List()...)).
	Field("email", validator.Rules().Required().With(emailRules.List()...)).
	Field("password", validator.Rules().Required().IsString().Regex(validator.PatternPassword))

var createRelations = validator.NewSchema().
	Field("email", validator.Rules().Unique(entityCustomersByEmail, matchEmail))

var updateShape = validator.NewSchema().
	Field("id", idRules).
	Field("name", nameRules).
	Field("email", emailRules)

// The customer's own row is ignored so that re-submitting the current email
// is not reported as a duplicate.
var updateRelations = validator.NewSchema().
	Field("id", validator.Rules().Exists(entityCustomers, matchID)).
	Field("email", validator.Rules().Unique(entityCustomersByEmail, matchEmail, matchID))

var idShape = validator.NewSchema().Field("id", idRules)

var idRelations = validator.NewSchema().
	Field("id", validator.Rules().Exists(entityCustomers, matchID))
