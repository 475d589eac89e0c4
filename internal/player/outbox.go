package player

import (
	"errors"
	"io"
	"sync"
	"time"
)

const (
	// DefaultMaxPending is how many unsent writes a client may fall behind
	// before it is dropped.
	DefaultMaxPending = 256

	drainTimeout = 2 * time.Second
)

var ErrSlowConsumer = errors.New("client is not keeping up with output")

// Outbox serializes writes to a connection. Writes go out in order and at
// most one write is in flight at a time. Enqueue never blocks.
type Outbox struct {
	w          io.Writer
	maxPending int

	mu       sync.Mutex
	queue    [][]byte
	flushing bool
	closed   bool
	err      error

	wg     sync.WaitGroup
	failed chan struct{}
}

func NewOutbox(w io.Writer, maxPending int) *Outbox {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Outbox{
		w:          w,
		maxPending: maxPending,
		failed:     make(chan struct{}),
	}
}

// Enqueue queues data and starts a flush if none is running.
func (o *Outbox) Enqueue(data []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.err != nil {
		return
	}
	if len(o.queue) >= o.maxPending {
		o.fail(ErrSlowConsumer)
		return
	}

	o.queue = append(o.queue, data)
	if !o.flushing {
		o.flushing = true
		o.wg.Add(1)
		go o.flush()
	}
}

func (o *Outbox) flush() {
	defer o.wg.Done()

	for {
		o.mu.Lock()
		if len(o.queue) == 0 || o.err != nil {
			o.flushing = false
			o.mu.Unlock()
			return
		}
		data := o.queue[0]
		o.queue[0] = nil
		o.queue = o.queue[1:]
		o.mu.Unlock()

		if _, err := o.w.Write(data); err != nil {
			o.mu.Lock()
			o.fail(err)
			o.mu.Unlock()
		}
	}
}

// fail records the first error and drops anything still queued. Callers
// must hold mu.
func (o *Outbox) fail(err error) {
	if o.err != nil {
		return
	}
	o.err = err
	o.queue = nil
	close(o.failed)
}

// Failed is closed when a write fails or the client falls too far behind.
func (o *Outbox) Failed() <-chan struct{} {
	return o.failed
}

func (o *Outbox) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Close stops accepting writes and waits a short while for queued data to
// reach the client.
func (o *Outbox) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(drainTimeout):
	}
}
