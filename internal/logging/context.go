// internal/logging/context.go
package logging

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Correlation field keys added to records logged with a context.
const (
	TraceIDKey   = "trace_id"
	SpanIDKey    = "span_id"
	RequestIDKey = "request.id"
)

const maxRequestIDLen = 128

type (
	requestIDKey struct{}
	loggerKey    struct{}
)

// correlationFields returns the trace, span and request IDs carried by ctx.
func correlationFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	var fields []zap.Field
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String(TraceIDKey, sc.TraceID().String()),
			zap.String(SpanIDKey, sc.SpanID().String()),
		)
	}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String(RequestIDKey, id))
	}
	return fields
}

// ContextWithRequestID returns a copy of ctx whose records carry id under
// RequestIDKey. The id must be 1 to 128 ASCII letters, digits, '-' or '_'.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, error) {
	if err := checkRequestID(id); err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, requestIDKey{}, id), nil
}

func checkRequestID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidRequestID)
	}
	if len(id) > maxRequestIDLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidRequestID, maxRequestIDLen)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidRequestID, id, r)
		}
	}
	return nil
}

// RequestID returns the request ID stored by ContextWithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ContextWithLogger returns a copy of ctx carrying l.
func ContextWithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFromContext returns the logger stored by ContextWithLogger, or a
// logger that discards everything.
func LoggerFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok && l != nil {
		return l
	}
	return NewNop()
}
