// Package outcome provides a tagged best-effort result: a value that is
// either the real thing or a documented fallback, with the reason it
// degraded. It replaces catch-and-substitute error handling so callers and
// tests can assert on the fallback path directly.
package outcome

// Outcome carries a value plus an optional degradation marker.
type Outcome[T any] struct {
	value    T
	degraded bool
	reason   string
}

// Ok wraps a fully computed value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Degraded wraps a fallback value with the reason the real computation failed.
func Degraded[T any](fallback T, reason string) Outcome[T] {
	return Outcome[T]{value: fallback, degraded: true, reason: reason}
}

// Value returns the carried value, degraded or not.
func (o Outcome[T]) Value() T { return o.value }

// IsDegraded reports whether the value is a fallback.
func (o Outcome[T]) IsDegraded() bool { return o.degraded }

// Reason returns why the outcome degraded, or "" for an ok outcome.
func (o Outcome[T]) Reason() string { return o.reason }
