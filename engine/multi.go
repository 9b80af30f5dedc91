package engine

import (
	"io"
	"net/http"
	"time"

	"github.com/adamwoolhether/fetchq/queue"
)

// completion is the multiplexer's report that one transfer finished.
// Either err is non-nil (transport-level failure), or status carries
// the server's verbatim status code and body the accumulated bytes.
type completion struct {
	token  uint64
	status int
	body   []byte
	err    error
}

// multi drives all in-flight transfers for the engine. Each registered
// transfer runs in its own goroutine and reports through an unbounded
// completion queue, so registering and harvesting never block the
// worker loop. The fetch goroutine exclusively owns its body buffer
// until the finished completion is handed over the queue.
//
// All bookkeeping (active count, pending list) is touched only by the
// engine's worker goroutine.
type multi struct {
	client      *http.Client
	completions *queue.Unbounded[completion]
	pending     []completion
	active      int
}

func newMulti(client *http.Client) *multi {
	return &multi{
		client:      client,
		completions: queue.New[completion](),
	}
}

// Add registers a new transfer under token. It never blocks.
func (m *multi) Add(token uint64, req *http.Request) {
	m.active++

	go func() {
		// The completion queue is never closed while transfers are
		// outstanding, so the push cannot fail.
		_ = m.completions.Push(m.fetch(token, req))
	}()
}

// Perform harvests transfers that finished since the last call into
// the pending list and reports how many remain active. It never
// blocks.
func (m *multi) Perform() int {
	for {
		c, ok := m.completions.TryPop()
		if !ok {
			break
		}
		m.pending = append(m.pending, c)
		m.active--
	}

	return m.active
}

// Messages returns the harvested completions in the order the
// transfers finished and clears the pending list.
func (m *multi) Messages() []completion {
	msgs := m.pending
	m.pending = nil

	return msgs
}

// Wait blocks up to timeout for at least one transfer to finish. It
// returns immediately when nothing is active or a completion is
// already pending.
func (m *multi) Wait(timeout time.Duration) {
	if m.active == 0 || len(m.pending) > 0 {
		return
	}

	if c, ok := m.completions.PopTimeout(timeout); ok {
		m.pending = append(m.pending, c)
		m.active--
	}
}

// fetch runs a single transfer to completion, accumulating the body.
func (m *multi) fetch(token uint64, req *http.Request) completion {
	resp, err := m.client.Do(req)
	if err != nil {
		return completion{token: token, err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return completion{token: token, err: err}
	}

	return completion{token: token, status: resp.StatusCode, body: body}
}
