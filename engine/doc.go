// Package engine implements the background worker that drives many
// concurrent outbound HTTP GET transfers.
//
// An [Engine] is decoupled from its callers by two unbounded queues:
// [Engine.Submit] pushes URLs onto the task queue, and [Engine.Poll]
// receives completed (or failed) [Response] values from the response
// queue. A single worker goroutine owns all transfer state in between:
// it pulls tasks, registers transfers with the multiplexer, correlates
// completions back to their originating URLs through a token table,
// and republishes results.
//
// # Worker cadence
//
// The loop runs in one of two modes. While transfers are in flight it
// drains new tasks without blocking and waits briefly (10ms by
// default) on transfer readiness between iterations. Once the
// multiplexer reports nothing active, the loop switches to an idle
// poll and blocks on the task queue for up to 500ms per pull. Both
// intervals are configurable, which keeps the state machine testable
// with tightened timings.
//
// # Guarantees
//
//	e, _ := engine.New()
//	_ = e.Start()
//	_ = e.Submit("https://example.com/")
//	resp, ok := e.Poll(5 * time.Second)
//
// Exactly one Response is produced per submitted URL, carrying that
// URL verbatim. Responses arrive in completion order, which is not
// submission order. A transport-level failure is reported as a
// Response with [StatusTransportError] and an empty body; it never
// aborts other transfers and is never retried.
package engine
