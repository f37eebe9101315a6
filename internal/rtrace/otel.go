// Package rtrace wraps the OpenTelemetry tracing API
// so that other packages only need to reference rtrace.
package rtrace

import (
	"fmt"

	"github.com/gordian-engine/rill"
	otelattr "go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	otpnoop "go.opentelemetry.io/otel/trace/noop"
)

type TracerProvider = oteltrace.TracerProvider

type Tracer = oteltrace.Tracer

type Span = oteltrace.Span

type KeyValueAttr = otelattr.KeyValue

// NopTracerProvider returns the otel no-op tracer provider.
// This is intended to use as a fallback when a nil tracer provider is given.
func NopTracerProvider() TracerProvider {
	return otpnoop.NewTracerProvider()
}

// WithAttributes is an alias to [oteltrace.WithAttributes]
// to allow consumers to only reference the rtrace package.
func WithAttributes(attrs ...KeyValueAttr) oteltrace.SpanStartEventOption {
	return oteltrace.WithAttributes(attrs...)
}

// StringerAttr returns an attribute that uses the given Stringer,
// to avoid eagerly evaluating its String method in case the span is not sampled.
func StringerAttr(key string, val fmt.Stringer) KeyValueAttr {
	return otelattr.Stringer(key, val)
}

// SpanError sets the given span to error status,
// with detail from err.Error().
func SpanError(span Span, err error) {
	span.SetStatus(otelcodes.Error, err.Error())
}

// ErrorAttr returns an attribute with the key "err"
// and the lazily evaluated value of err's Error() method.
func ErrorAttr(err error) KeyValueAttr {
	return otelattr.Stringer("err", errStringer{err: err})
}

type errStringer struct {
	err error
}

func (e errStringer) String() string {
	return e.err.Error()
}

// CapacityAttr records a replay capacity; negative means unbounded.
func CapacityAttr(capacity int) KeyValueAttr {
	return otelattr.Int("rill.capacity", capacity)
}

// ReplayedAttr records how many buffered items a new subscriber starts with.
func ReplayedAttr(n int) KeyValueAttr {
	return otelattr.Int("rill.replayed", n)
}

// TerminalAttr records a terminal event, evaluated lazily.
func TerminalAttr(t rill.Terminal) KeyValueAttr {
	return StringerAttr("rill.terminal", t)
}
