package types

import "errors"

// Record and store operation errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidID    = errors.New("invalid record ID")
	ErrInvalidIndex = errors.New("index out of range")
	ErrInvalidDate  = errors.New("invalid date")
)
