package engine

import (
	"time"

	"go.opentelemetry.io/otel/trace"
)

// transfer holds the engine-side metadata for one in-flight HTTP GET.
// The body itself is accumulated by the multiplexer's fetch goroutine;
// the engine keeps only what it needs to correlate and report the
// completion.
type transfer struct {
	token   uint64
	id      string
	span    trace.Span
	started time.Time
}
