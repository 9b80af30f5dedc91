package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/fetchq/queue"
	"github.com/adamwoolhether/fetchq/throttle"
)

// version is reported in the engine's default client signature.
const version = "0.1.0"

const (
	defaultUserAgent         = "fetchq/" + version
	defaultIdlePollInterval  = 500 * time.Millisecond
	defaultReadinessInterval = 10 * time.Millisecond
)

// Engine performs concurrent outbound HTTP GET transfers on behalf of
// its callers. Construct with [New], launch the worker with
// [Engine.Start], then feed it with [Engine.Submit] and collect
// results with [Engine.Poll] from any number of goroutines.
type Engine struct {
	tasks     *queue.Unbounded[string]
	responses *queue.Unbounded[Response]

	client    *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
	idlePoll  time.Duration
	readiness time.Duration

	started atomic.Bool
	running atomic.Bool
	done    chan struct{}
}

// New creates an Engine with the given options. A default
// [http.Client], the "fetchq/<version>" client signature, the default
// slog logger, and a no-op tracer are used unless overridden.
func New(optFns ...Option) (*Engine, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying engine option: %w", err)
		}
	}

	e := &Engine{
		tasks:     queue.New[string](),
		responses: queue.New[Response](),
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer("no-op tracer"),
		idlePoll:  defaultIdlePollInterval,
		readiness: defaultReadinessInterval,
		done:      make(chan struct{}),
	}

	if opts.logger != nil {
		e.logger = opts.logger
	}
	if opts.tracer != nil {
		e.tracer = opts.tracer
	}
	if opts.idlePoll != 0 {
		e.idlePoll = opts.idlePoll
	}
	if opts.readiness != 0 {
		e.readiness = opts.readiness
	}

	c := opts.client
	if c == nil {
		c = &http.Client{}
	}
	if opts.timeout != nil {
		c.Timeout = *opts.timeout
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case c.Transport != nil:
		transport = c.Transport
	default:
		transport = http.DefaultTransport
	}

	signature := opts.userAgent
	if signature == "" {
		signature = defaultUserAgent
	}
	transport = userAgent{value: signature, base: transport}

	if opts.throttle != nil {
		rt, err := throttle.New(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return e.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	c.Transport = transport
	e.client = c

	return e, nil
}

// Start launches the engine's single worker goroutine. All transfer
// state is owned by that goroutine; callers interact with it only
// through [Engine.Submit] and [Engine.Poll].
func (e *Engine) Start() error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	e.running.Store(true)
	go e.run()

	return nil
}

// Submit enqueues url for fetching. It never blocks and fails only
// after [Engine.Close].
func (e *Engine) Submit(url string) error {
	if err := e.tasks.Push(url); err != nil {
		return fmt.Errorf("submitting %q: %w", url, ErrEngineClosed)
	}

	return nil
}

// Poll waits up to timeout for the next completed [Response]. The
// false return means nothing completed in time, not an error: polling
// again later is expected, and a response queued in the meantime is
// never lost.
func (e *Engine) Poll(timeout time.Duration) (Response, bool) {
	return e.responses.PopTimeout(timeout)
}

// Close stops the worker after its current iteration and blocks until
// it has exited. In-flight transfers are abandoned without a Response;
// completed responses already queued remain pollable. Close does not
// wait for abandoned transfers to wind down.
func (e *Engine) Close() error {
	if !e.running.CompareAndSwap(true, false) {
		return ErrEngineClosed
	}

	// Wake the worker out of its idle task poll.
	_ = e.tasks.Close()
	<-e.done

	return nil
}

// run is the engine loop. It is the only goroutine that ever touches
// the multiplexer, the correlation table, or the token counter.
func (e *Engine) run() {
	defer close(e.done)

	m := newMulti(e.client)
	tbl := newTable()
	var nextToken uint64

	// draining tracks the loop mode: true means transfers were active
	// on the last tick, so task pulls must not block.
	draining := true

	for e.running.Load() {
		if url, ok := e.pullTask(draining); ok {
			draining = true
			e.register(m, tbl, nextToken, url)
			nextToken++
		}

		// Completions can still be pending when Perform reports zero
		// active transfers, so the drain below always runs.
		if m.Perform() == 0 {
			draining = false
		}

		for _, c := range m.Messages() {
			resp, ok := e.complete(tbl, c)
			if !ok {
				continue
			}
			e.publish(resp)
		}

		if draining {
			m.Wait(e.readiness)
		}
	}
}

// pullTask fetches the next submitted URL, blocking only in idle mode.
func (e *Engine) pullTask(draining bool) (string, bool) {
	if draining {
		return e.tasks.TryPop()
	}

	return e.tasks.PopTimeout(e.idlePoll)
}

// register allocates a transfer for url under token and hands it to
// the multiplexer. It must not block. A URL that cannot even be formed
// into a request is reported as a transport failure immediately.
func (e *Engine) register(m *multi, tbl *table, token uint64, rawURL string) {
	ctx, span := e.tracer.Start(context.Background(), "engine.transfer",
		trace.WithAttributes(attribute.String("url", rawURL)))

	id := span.SpanContext().TraceID().String()
	if !span.SpanContext().TraceID().IsValid() {
		id = uuid.New().String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		span.End()
		e.logger.Debug("rejecting malformed url", "id", id, "url", rawURL, "error", err)
		e.publish(Response{URL: rawURL, StatusCode: StatusTransportError})
		return
	}

	tbl.put(token, entry{
		url: rawURL,
		tr:  &transfer{token: token, id: id, span: span, started: time.Now()},
	})
	m.Add(token, req)

	e.logger.Debug("transfer registered", "id", id, "token", token, "url", rawURL)
}

// complete turns a multiplexer completion into a Response, removing
// the correlation entry. A token with no entry is an internal
// invariant breach; it is logged and dropped rather than crashing the
// worker.
func (e *Engine) complete(tbl *table, c completion) (Response, bool) {
	ent, ok := tbl.remove(c.token)
	if !ok {
		e.logger.Error("completion for unknown token", "token", c.token)
		return Response{}, false
	}

	tr := ent.tr
	defer tr.span.End()

	elapsed := time.Since(tr.started)

	if c.err != nil {
		tr.span.RecordError(c.err)
		e.logger.Debug("transfer failed", "id", tr.id, "url", ent.url, "elapsed", elapsed, "error", c.err)

		return Response{URL: ent.url, StatusCode: StatusTransportError}, true
	}

	tr.span.SetAttributes(attribute.Int("status", c.status))
	e.logger.Debug("transfer complete", "id", tr.id, "url", ent.url, "status", c.status, "bytes", len(c.body), "elapsed", elapsed)

	return Response{URL: ent.url, StatusCode: c.status, Body: c.body}, true
}

// publish hands a Response to the response queue. The queue is
// unbounded and never closed by the engine, so a failure here is an
// internal error; the response is dropped, not retried.
func (e *Engine) publish(resp Response) {
	if err := e.responses.Push(resp); err != nil {
		e.logger.Error("dropping response", "url", resp.URL, "error", err)
	}
}
