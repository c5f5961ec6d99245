package codecutil

import "testing"

func TestRawReaderSuspendsUntilEnoughData(t *testing.T) {
	r := NewRawReader()
	r.Push([]byte{1, 2, 3})
	if _, ok := r.Ensure(4, 0); ok {
		t.Fatal("expected Ensure to report insufficient data")
	}
	r.Push([]byte{4, 5})
	view, ok := r.Ensure(4, 0)
	if !ok {
		t.Fatal("expected Ensure to succeed once enough data is buffered")
	}
	if len(view) != 5 {
		t.Fatalf("view len = %d, want 5", len(view))
	}
}

func TestRawReaderFlushingReturnsPartial(t *testing.T) {
	r := NewRawReader()
	r.Push([]byte{1, 2})
	r.Flush()
	view, ok := r.Ensure(10, 0)
	if !ok {
		t.Fatal("expected Ensure to succeed while flushing")
	}
	if len(view) != 2 {
		t.Fatalf("view len = %d, want 2", len(view))
	}
}

func TestRawReaderAdvanceInvalidatesPrefix(t *testing.T) {
	r := NewRawReader()
	r.Push([]byte{1, 2, 3, 4})
	r.Advance(2)
	view, ok := r.Ensure(0, 0)
	if !ok {
		t.Fatal("expected Ensure to succeed")
	}
	want := []byte{3, 4}
	if len(view) != len(want) || view[0] != want[0] || view[1] != want[1] {
		t.Fatalf("view = %v, want %v", view, want)
	}
	if r.Position() != 2 {
		t.Fatalf("Position() = %d, want 2", r.Position())
	}
}

func TestRawReaderResetReusable(t *testing.T) {
	r := NewRawReader()
	r.Push([]byte{1, 2, 3})
	r.Flush()
	r.Advance(3)
	r.Reset()
	if r.Flushing() {
		t.Fatal("expected Reset to clear flushing")
	}
	if r.Len() != 0 || r.Position() != 0 || r.TotalIn() != 0 {
		t.Fatal("expected Reset to zero all counters")
	}
}
