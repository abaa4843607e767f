package customer

import (
	"time"

	"github.com/dmitrymomot/storefront/pkg/store"
)

// Table and column names of the customers repository.
const (
	Table = "customers"

	ColID           = "id"
	ColName         = "name"
	ColEmail        = "email"
	ColPasswordHash = "password_hash"
	ColCreatedAt    = "created_at"
	ColUpdatedAt    = "updated_at"
)

// Columns lists every column of the customers table.
var Columns = []string{ColID, ColName, ColEmail, ColPasswordHash, ColCreatedAt, ColUpdatedAt}

// Customer is the public view of a customer record. The password hash never
// leaves the service.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func fromRecord(rec store.Record) Customer {
	return Customer{
		ID:        store.String(rec, ColID),
		Name:      store.String(rec, ColName),
		Email:     store.String(rec, ColEmail),
		CreatedAt: store.Time(rec, ColCreatedAt),
		UpdatedAt: store.Time(rec, ColUpdatedAt),
	}
}
