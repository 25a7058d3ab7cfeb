package nexuslogger

type directiveKind uint8

const (
	dirWriteBatch directiveKind = iota
	dirFlush
	dirExit
)

// directive is the single message type carried over a sink transport.
// Batches and lifecycle control share one channel, so their relative
// delivery order is preserved per sender.
type directive struct {
	kind    directiveKind
	batch   []entry
	confirm chan struct{} // closed by the worker once a flush completes
}

// transport is the bounded multi-producer single-consumer channel feeding a
// sink worker. A full channel blocks the sender; once the worker has
// terminated, sends become silent no-ops and any blocked sender is
// released. Logging must never stall or fault the host after shutdown.
type transport struct {
	ch   chan directive
	done chan struct{}
}

func newTransport(capacity int64) *transport {
	return &transport{
		ch:   make(chan directive, capacity),
		done: make(chan struct{}),
	}
}

// send delivers d to the worker, blocking while the channel is at capacity.
// Returns false if the worker is gone and the directive was discarded.
func (t *transport) send(d directive) bool {
	select {
	case <-t.done:
		return false
	default:
	}
	select {
	case t.ch <- d:
		return true
	case <-t.done:
		return false
	}
}

// disconnect marks the consuming end gone. Called exactly once, by the
// worker goroutine, on exit.
func (t *transport) disconnect() {
	close(t.done)
}
