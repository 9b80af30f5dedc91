package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/fetchq/throttle"
)

// Option is a functional option for configuring an [Engine] via [New].
type Option func(*options) error

type options struct {
	client    *http.Client
	rt        http.RoundTripper
	timeout   *time.Duration
	userAgent string
	throttle  *throttle.Config
	logger    *slog.Logger
	tracer    trace.Tracer
	idlePoll  time.Duration
	readiness time.Duration
}

// WithClient replaces the default [http.Client] used for transfers.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the per-transfer timeout on the underlying
// [http.Client]. A transfer exceeding it completes with
// [StatusTransportError].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent overrides the engine's default client signature sent
// with every transfer.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle paces outbound transfers with a token-bucket limiter of
// the given requests per second and burst capacity. It bounds request
// rate, not the number of concurrent transfers.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Engine].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer records a span per transfer, from registration to
// completion, on the given tracer. Default is a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithIdlePollInterval bounds how long the worker blocks waiting for a
// new task when no transfers are in flight. Default is 500ms.
func WithIdlePollInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.New("idle poll interval must be positive")
		}
		o.idlePoll = d
		return nil
	}
}

// WithReadinessInterval bounds how long the worker blocks on transfer
// readiness between iterations while transfers are in flight. Default
// is 10ms.
func WithReadinessInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.New("readiness interval must be positive")
		}
		o.readiness = d
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent
// User-Agent header carried by every transfer.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
