// Package shop is the HTTP adapter of the storefront: it binds JSON bodies
// and URL parameters into validator models, calls the use-case services and
// renders the {code, data, error} envelope.
//
// Rule failures become 422 with per-field details, store.ErrNotFound 404,
// store.ErrConflict 409 and an unknown session 401. Other errors are faults
// and answer 500 without exposing their text.
package shop
