package domain

import "errors"

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrNotFound               = errors.New("not found")
	ErrPersistence            = errors.New("persistence failure")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrCurrencyMismatch       = errors.New("currency mismatch")
)
