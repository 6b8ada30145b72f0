// internal/logging/errors.go
package logging

import "errors"

var (
	// ErrInvalidConfig wraps every configuration failure reported by Validate
	// and Registry.Get.
	ErrInvalidConfig = errors.New("invalid logging config")

	ErrInvalidLevel   = errors.New("invalid level")
	ErrInvalidPattern = errors.New("invalid redaction pattern")
	ErrInvalidColor   = errors.New("invalid color spec")

	// ErrInvalidRequestID is returned by ContextWithRequestID.
	ErrInvalidRequestID = errors.New("invalid request id")
)
