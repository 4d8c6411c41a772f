package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound          = errors.New("NOT_FOUND")
	ErrInsufficientStock = errors.New("INSUFFICIENT_STOCK")
	ErrPriceMismatch     = errors.New("PRICE_MISMATCH")
	ErrInvalidTransition = errors.New("INVALID_TRANSITION")
)
