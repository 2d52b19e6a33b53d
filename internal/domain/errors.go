package domain

import "errors"

var (
	ErrNoFundsProvided    = errors.New("no funds provided")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageNotFound    = errors.New("storage not found")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadyInitialized = errors.New("already initialized")
)

// ErrorCode maps an error to a stable snake_case code used in API responses
// and metric labels.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFundsProvided):
		return "no_funds_provided"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrArithmeticOverflow):
		return "arithmetic_overflow"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrStorageNotFound):
		return "not_initialized"
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAlreadyInitialized):
		return "already_initialized"
	default:
		return "internal"
	}
}
