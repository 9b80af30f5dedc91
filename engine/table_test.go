package engine

import "testing"

func TestTable_PutRemove(t *testing.T) {
	tbl := newTable()

	tbl.put(7, entry{url: "http://example.com/"})

	e, ok := tbl.remove(7)
	if !ok {
		t.Fatal("expected entry for token 7")
	}
	if e.url != "http://example.com/" {
		t.Errorf("expected url %q, got %q", "http://example.com/", e.url)
	}

	if _, ok := tbl.remove(7); ok {
		t.Error("expected second remove to miss")
	}
}

func TestTable_RemoveUnknownToken(t *testing.T) {
	tbl := newTable()

	if _, ok := tbl.remove(42); ok {
		t.Error("expected miss for unregistered token")
	}
}

func TestTable_ChurnDoesNotLeak(t *testing.T) {
	tbl := newTable()

	// Sequential single-transfer round trips: every registration is
	// paired with a removal and the table returns to empty each time.
	var token uint64
	for i := 0; i < 1000; i++ {
		tbl.put(token, entry{url: "http://example.com/"})
		if got := tbl.len(); got != 1 {
			t.Fatalf("expected 1 entry after put, got %d", got)
		}

		if _, ok := tbl.remove(token); !ok {
			t.Fatalf("expected entry for token %d", token)
		}
		if got := tbl.len(); got != 0 {
			t.Fatalf("expected empty table after remove, got %d entries", got)
		}

		token++
	}
}

func TestTable_ConcurrentTokensStayDistinct(t *testing.T) {
	tbl := newTable()

	for i := uint64(0); i < 50; i++ {
		tbl.put(i, entry{url: "http://example.com/" + string(rune('a'+i%26))})
	}

	if got := tbl.len(); got != 50 {
		t.Fatalf("expected 50 entries, got %d", got)
	}

	for i := uint64(0); i < 50; i++ {
		if _, ok := tbl.remove(i); !ok {
			t.Errorf("missing entry for token %d", i)
		}
	}

	if got := tbl.len(); got != 0 {
		t.Errorf("expected empty table, got %d entries", got)
	}
}
