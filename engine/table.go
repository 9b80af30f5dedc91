package engine

// entry correlates an outstanding token with everything needed to
// build its Response. A token in the multiplexer's active set has
// exactly one entry; put and remove are always paired.
type entry struct {
	url string
	tr  *transfer
}

// table is the arena-style correlation table keyed by token. One
// record per token is the single source of truth, rather than
// parallel maps kept in lockstep. The table is owned by the engine's
// worker goroutine and needs no locking.
type table struct {
	entries map[uint64]entry
}

func newTable() *table {
	return &table{entries: make(map[uint64]entry)}
}

func (t *table) put(token uint64, e entry) {
	t.entries[token] = e
}

func (t *table) remove(token uint64) (entry, bool) {
	e, ok := t.entries[token]
	if ok {
		delete(t.entries, token)
	}

	return e, ok
}

func (t *table) len() int {
	return len(t.entries)
}
