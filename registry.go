package nexuslogger

import (
	"path/filepath"
	"sync"
)

// sharedSink pairs one transport with one worker goroutine. Every logger
// handle resolved for the same target holds an owning reference to the
// same shared sink, so a single file handle and flush cycle serve them all.
type sharedSink struct {
	tr   *transport
	refs int // guarded by the registry mutex
}

func newSharedSink(settings sinkSettings) *sharedSink {
	tr := newTransport(settings.channelCapacity)
	ctx := &sinkContext{
		settings: settings,
		tr:       tr,
		cache:    newFormatCache(),
	}
	go ctx.run()
	return &sharedSink{tr: tr}
}

// stop sends Exit and blocks until the worker goroutine has terminated.
// Directives queued ahead of Exit are drained first.
func (s *sharedSink) stop() {
	s.tr.send(directive{kind: dirExit})
	<-s.tr.done
}

// sinkKey identifies one physical output target.
type sinkKey struct {
	console bool
	target  string // absolute file path, or the console stream name
}

func sinkKeyFor(cfg *Config) sinkKey {
	if cfg.Path == "" {
		return sinkKey{console: true, target: cfg.ConsoleTarget}
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		abs = filepath.Clean(cfg.Path)
	}
	return sinkKey{target: abs}
}

// sinkRegistry is the process-wide table sharing one worker/transport pair
// across every logger handle targeting the same destination. It is touched
// only on handle construction and teardown.
type sinkRegistry struct {
	mu    sync.Mutex
	sinks map[sinkKey]*sharedSink
}

var registry = &sinkRegistry{sinks: make(map[sinkKey]*sharedSink)}

// resolve returns an owning reference to the shared sink for key, creating
// the transport and spawning the worker on first use. The output target
// itself is opened lazily inside the worker.
func (r *sinkRegistry) resolve(key sinkKey, settings sinkSettings) *sharedSink {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sinks[key]; ok {
		s.refs++
		return s
	}
	s := newSharedSink(settings)
	s.refs = 1
	r.sinks[key] = s
	return s
}

// release drops one owning reference. Dropping the last reference removes
// the sink from the registry and tears it down synchronously: the caller
// blocks until the worker has drained and terminated.
func (r *sinkRegistry) release(key sinkKey, s *sharedSink) {
	r.mu.Lock()
	s.refs--
	last := s.refs == 0
	if last {
		delete(r.sinks, key)
	}
	r.mu.Unlock()

	if last {
		s.stop()
	}
}
