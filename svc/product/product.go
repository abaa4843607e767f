package product

import (
	"time"

	"github.com/dmitrymomot/storefront/pkg/store"
)

// Table and column names of the products repository.
const (
	Table = "products"

	ColID          = "id"
	ColName        = "name"
	ColDescription = "description"
	ColPrice       = "price"
	ColStock       = "stock"
	ColCurrency    = "currency"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
)

// Columns lists every column of the products table.
var Columns = []string{ColID, ColName, ColDescription, ColPrice, ColStock, ColCurrency, ColCreatedAt, ColUpdatedAt}

// DefaultCurrencies are accepted when the service is built without WithCurrencies.
var DefaultCurrencies = []string{"USD", "EUR", "GBP"}

// Product is the public view of a product record. Price is in minor units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func fromRecord(rec store.Record) Product {
	return Product{
		ID:          store.String(rec, ColID),
		Name:        store.String(rec, ColName),
		Description: store.String(rec, ColDescription),
		Price:       store.Int(rec, ColPrice),
		Stock:       store.Int(rec, ColStock),
		Currency:    store.String(rec, ColCurrency),
		CreatedAt:   store.Time(rec, ColCreatedAt),
		UpdatedAt:   store.Time(rec, ColUpdatedAt),
	}
}
