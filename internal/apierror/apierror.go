// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "errors"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}

// Domain sentinels. Services wrap these with context via fmt.Errorf("...: %w");
// handlers translate them to HTTP statuses with errors.Is.
var (
	// ErrNotFound — unknown product, or no market data / simulation yet.
	// On read paths the client treats the resulting 404 as a valid empty state.
	ErrNotFound = errors.New("not found")

	// ErrNotComputable — score requested for a product with zero simulations.
	ErrNotComputable = errors.New("not computable")

	// ErrValidation — out-of-range input detected past JSON binding
	// (e.g. decision reason shorter than 3 chars, non-positive quantity).
	ErrValidation = errors.New("validation error")
)
