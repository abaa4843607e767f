package session

import (
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/customer"
)

const entityCustomersByEmail = "customersByEmail"

const ruleCredentials validator.RuleKind = "credentials"

var createShape = validator.NewSchema().
	Field("email", validator.Rules().Required().IsString().Length(3, 254).Regex(validator.PatternEmail)).
	Field("password", validator.Rules().Required().IsString().Length(1, 128))

var createRelations = validator.NewSchema().
	Field("email", validator.Rules().Exists(entityCustomersByEmail, validator.Match("email", customer.ColEmail)))
