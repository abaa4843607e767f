package store

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrConflict      = errors.New("record conflicts with an existing one")
	ErrUnknownColumn = errors.New("unknown column")
	ErrMissingID     = errors.New("record has no id")
)
