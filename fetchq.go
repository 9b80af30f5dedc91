// Package fetchq exposes a background engine for concurrent
// asynchronous HTTP fetches: submit URLs, poll for completed
// responses, in any order, from any goroutine.
package fetchq

import (
	"fmt"
	"sync"
	"time"

	"github.com/adamwoolhether/fetchq/engine"
)

// Downloader is the caller-facing handle to a running engine.
// All methods are safe for concurrent use.
type Downloader struct {
	e *engine.Engine
}

// Build creates a Downloader and starts its engine worker.
func Build(opts ...engine.Option) (*Downloader, error) {
	e, err := engine.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	if err := e.Start(); err != nil {
		return nil, fmt.Errorf("starting engine: %w", err)
	}

	return &Downloader{e: e}, nil
}

// Submit enqueues url for fetching. It never blocks and fails only
// after [Downloader.Close].
func (d *Downloader) Submit(url string) error {
	return d.e.Submit(url)
}

// Poll waits up to timeout for the next completed [Response]. The
// false return means nothing completed in time; poll again later.
// Responses arrive in completion order, not submission order.
func (d *Downloader) Poll(timeout time.Duration) (Response, bool) {
	return d.e.Poll(timeout)
}

// Close stops the engine worker. In-flight transfers are abandoned;
// responses already completed remain pollable.
func (d *Downloader) Close() error {
	return d.e.Close()
}

var (
	defaultOnce sync.Once
	defaultDL   *Downloader
)

// Default returns the process-wide Downloader, constructing and
// starting it on first use. It is never closed; its worker runs for
// the life of the process.
func Default() *Downloader {
	defaultOnce.Do(func() {
		d, err := Build()
		if err != nil {
			// Build with zero options cannot fail; reaching this is a
			// programming error.
			panic(fmt.Sprintf("fetchq: building default downloader: %v", err))
		}
		defaultDL = d
	})

	return defaultDL
}

// Submit enqueues url on the process-wide Downloader.
func Submit(url string) error {
	return Default().Submit(url)
}

// Poll receives the next completed Response from the process-wide
// Downloader.
func Poll(timeout time.Duration) (Response, bool) {
	return Default().Poll(timeout)
}
