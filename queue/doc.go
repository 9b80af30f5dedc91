// Package queue provides an unbounded, multi-producer/multi-consumer
// FIFO queue with non-blocking and bounded-blocking receives.
//
// A send never blocks and never fails due to capacity; it fails only
// after the queue has been closed. Receivers choose their blocking
// policy per call:
//
//	q := queue.New[string]()
//	_ = q.Push("task")
//
//	v, ok := q.TryPop()                       // non-blocking
//	v, ok = q.PopTimeout(500 * time.Millisecond) // bounded blocking
//
// Items pushed before Close remain receivable after it, so a consumer
// polling with a timeout never loses a queued item.
package queue
