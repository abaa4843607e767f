package order

import (
	"time"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
	"github.com/dmitrymomot/storefront/pkg/store"
)

// Table and column names of the orders repository.
const (
	Table = "orders"

	ColID           = "id"
	ColCustomerID   = "customer_id"
	ColStatus       = "status"
	ColItems        = "items"
	ColDeliveryDate = "delivery_date"
	ColCreatedAt    = "created_at"
	ColUpdatedAt    = "updated_at"

	itemProductID = "product_id"
	itemQuantity  = "quantity"
)

// Columns lists every column of the orders table.
var Columns = []string{ColID, ColCustomerID, ColStatus, ColItems, ColDeliveryDate, ColCreatedAt, ColUpdatedAt}

// Order statuses.
const (
	StatusPending   = statemachine.State("pending")
	StatusPaid      = statemachine.State("paid")
	StatusShipped   = statemachine.State("shipped")
	StatusDelivered = statemachine.State("delivered")
	StatusCancelled = statemachine.State("cancelled")
)

// Lifecycle lists the allowed status changes of an order.
var Lifecycle = statemachine.MustNew(StatusPending,
	statemachine.WithTransition(StatusPending, StatusPaid, StatusCancelled),
	statemachine.WithTransition(StatusPaid, StatusShipped, StatusCancelled),
	statemachine.WithTransition(StatusShipped, StatusDelivered),
)

// Item is one order line.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// Order is the public view of an order record.
type Order struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	Status       string    `json:"status"`
	Items        []Item    `json:"orderItems"`
	DeliveryDate string    `json:"deliveryDate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func fromRecord(rec store.Record) Order {
	o := Order{
		ID:         store.String(rec, ColID),
		CustomerID: store.String(rec, ColCustomerID),
		Status:     store.String(rec, ColStatus),
		CreatedAt:  store.Time(rec, ColCreatedAt),
		UpdatedAt:  store.Time(rec, ColUpdatedAt),
	}
	if d := store.OptionalTime(rec, ColDeliveryDate); d != nil {
		o.DeliveryDate = d.Format(time.DateOnly)
	}

	items, _ := rec[ColItems].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		o.Items = append(o.Items, Item{
			ProductID: store.String(item, itemProductID),
			Quantity:  store.Int(item, itemQuantity),
		})
	}
	return o
}
