package queue

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by [Unbounded.Push] after the queue has been closed.
var ErrClosed = errors.New("queue is closed")

// Unbounded is a FIFO queue with no capacity limit. Any number of
// goroutines may push and pop concurrently; each item is delivered to
// exactly one consumer.
type Unbounded[T any] struct {
	mu     sync.Mutex
	items  []T
	signal chan struct{}
	done   chan struct{}
	closed bool
}

// New creates an empty queue.
func New[T any]() *Unbounded[T] {
	return &Unbounded[T]{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Push appends v to the queue. It never blocks and fails only if the
// queue has been closed.
func (q *Unbounded[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}

	return nil
}

// TryPop removes and returns the head of the queue without blocking.
func (q *Unbounded[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.pop()
}

// PopTimeout removes and returns the head of the queue, blocking up to
// timeout for an item to arrive. The false return means no item was
// available in time, or the queue is closed and drained.
func (q *Unbounded[T]) PopTimeout(timeout time.Duration) (T, bool) {
	if v, ok := q.TryPop(); ok {
		return v, true
	}

	var zero T
	if timeout <= 0 {
		return zero, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-q.signal:
		case <-q.done:
		case <-timer.C:
			return zero, false
		}

		q.mu.Lock()
		v, ok := q.pop()
		closed := q.closed
		q.mu.Unlock()

		if ok {
			return v, true
		}
		if closed {
			return zero, false
		}
	}
}

// Len reports the number of queued items.
func (q *Unbounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Close rejects further pushes and wakes all blocked consumers. Items
// already queued remain receivable.
func (q *Unbounded[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	close(q.done)

	return nil
}

// pop removes the head under q.mu. The signal is re-armed when items
// remain so that one wake-up per push is never lost to a consumer that
// drained a different push.
func (q *Unbounded[T]) pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}

	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]

	if len(q.items) > 0 {
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}

	return v, true
}
