// Package store persists storefront entities as column-keyed records.
//
// Repository is deliberately untyped: use-cases read rows and hand them
// straight to the validator as data-context records, so a relational rule
// such as Exists("customers", Match("customerId", "id")) matches a request key
// against a column name without any mapping layer in between.
//
// Postgres runs parameterised SQL through pgx/v5 and decodes rows with
// pgx.RowToMap; uuid columns come back as canonical strings. Mongo keeps one
// document per row with the id as _id and converts BSON values back to plain
// Go types; it has no foreign keys, so deleting a referenced row succeeds.
// Memory keeps rows in a map and is used by the "memory" store driver and by
// tests.
//
// Missing rows are reported as ErrNotFound and unique or foreign key
// violations as ErrConflict, so callers can use errors.Is regardless of the
// backend.
package store
