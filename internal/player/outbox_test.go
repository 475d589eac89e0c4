package player

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

// recordingWriter records writes and tracks how many run at once.
type recordingWriter struct {
	mu     sync.Mutex
	writes []string

	active    atomic.Int32
	maxActive atomic.Int32

	gate chan struct{} // if set, each write waits for a receive
	err  error
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	n := w.active.Add(1)
	defer w.active.Add(-1)
	for {
		m := w.maxActive.Load()
		if n <= m || w.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	if w.gate != nil {
		<-w.gate
	}
	if w.err != nil {
		return 0, w.err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func (w *recordingWriter) Writes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.writes))
	copy(out, w.writes)
	return out
}

func TestOutbox_OrderAndSingleFlight(t *testing.T) {
	w := &recordingWriter{}
	o := NewOutbox(w, 1000)

	for i := range 200 {
		o.Enqueue([]byte(fmt.Sprintf("%d", i)))
	}
	o.Close()

	writes := w.Writes()
	testutil.AssertEqual(t, "count", len(writes), 200)
	for i, got := range writes {
		testutil.AssertEqual(t, "order", got, fmt.Sprintf("%d", i))
	}
	testutil.AssertEqual(t, "max concurrent writes", w.maxActive.Load(), int32(1))
}

func TestOutbox_SlowConsumer(t *testing.T) {
	w := &recordingWriter{gate: make(chan struct{})}
	o := NewOutbox(w, 2)

	for range 10 {
		o.Enqueue([]byte("frame"))
	}

	select {
	case <-o.Failed():
	case <-time.After(time.Second):
		t.Fatalf("outbox did not fail")
	}
	testutil.AssertEqual(t, "error", errors.Is(o.Err(), ErrSlowConsumer), true)

	close(w.gate)
	o.Close()
	if len(w.Writes()) > 1 {
		t.Errorf("expected queued writes to be dropped, got %d", len(w.Writes()))
	}
}

func TestOutbox_WriteError(t *testing.T) {
	boom := errors.New("broken pipe")
	w := &recordingWriter{err: boom}
	o := NewOutbox(w, 0)

	o.Enqueue([]byte("hello"))

	select {
	case <-o.Failed():
	case <-time.After(time.Second):
		t.Fatalf("outbox did not fail")
	}
	testutil.AssertEqual(t, "error", errors.Is(o.Err(), boom), true)

	// Later writes are ignored and do not panic.
	o.Enqueue([]byte("again"))
	o.Close()
}

func TestOutbox_CloseDrainsAndRejects(t *testing.T) {
	w := &recordingWriter{gate: make(chan struct{})}
	o := NewOutbox(w, 0)

	o.Enqueue([]byte("one"))
	o.Enqueue([]byte("two"))

	go func() {
		w.gate <- struct{}{}
		w.gate <- struct{}{}
	}()
	o.Close()
	o.Enqueue([]byte("three"))

	writes := w.Writes()
	testutil.AssertEqual(t, "count", len(writes), 2)
	testutil.AssertEqual(t, "last", writes[1], "two")
}
