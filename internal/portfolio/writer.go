package portfolio

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

var errWriterClosed = errors.New("portfolio writer is closed")

// writer persists snapshots on a single goroutine. A newer snapshot
// replaces a pending one and their dirty keys are merged, so the store
// always receives the latest state for every key that changed.
type writer struct {
	gateway *Gateway
	retries int
	backoff time.Duration
	log     *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	pending   *State
	dirty     map[string]bool
	failed    map[string]bool // keys from writes that gave up
	accepted  uint64
	completed uint64
	lastErr   error
	changed   chan struct{}
	closed    bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	errs    chan error
}

func newWriter(gateway *Gateway, retries int, backoff time.Duration, log *zap.SugaredLogger) *writer {
	ctx, cancel := context.WithCancel(context.Background())
	w := &writer{
		gateway: gateway,
		retries: retries,
		backoff: backoff,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		changed: make(chan struct{}),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		errs:    make(chan error, 16),
	}
	go w.run()
	return w
}

// submit queues s for writing. It never blocks on the store.
func (w *writer) submit(s State, keys ...string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warnw("Dropping portfolio write", "keys", keys, "error", errWriterClosed)
		return
	}
	if w.dirty == nil {
		w.dirty = make(map[string]bool, len(AllKeys))
	}
	for k := range w.failed {
		w.dirty[k] = true
	}
	w.failed = nil
	for _, k := range keys {
		w.dirty[k] = true
	}
	w.pending = &s
	w.accepted++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// flush blocks until every snapshot accepted so far has been written or
// abandoned, and returns the error of the write that covered it.
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.accepted
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if w.completed >= target {
			err := w.lastErr
			w.mu.Unlock()
			return err
		}
		ch := w.changed
		w.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// close flushes, stops the goroutine and closes the error channel.
func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.flush(ctx)
	w.cancel()
	close(w.quit)
	<-w.stopped
	close(w.errs)
	return err
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if w.pending == nil {
			w.mu.Unlock()
			return
		}
		state, dirty, seq := *w.pending, w.dirty, w.accepted
		w.pending, w.dirty = nil, nil
		w.mu.Unlock()

		keys := make([]string, 0, len(dirty))
		for k := range dirty {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		err := w.write(state, keys)

		w.mu.Lock()
		if err != nil {
			if w.failed == nil {
				w.failed = make(map[string]bool, len(keys))
			}
			for _, k := range keys {
				w.failed[k] = true
			}
		}
		w.completed = seq
		w.lastErr = err
		close(w.changed)
		w.changed = make(chan struct{})
		w.mu.Unlock()

		if err != nil {
			w.log.Errorw("Failed to persist portfolio", "keys", keys, "error", err)
			w.publish(err)
		}
	}
}

func (w *writer) write(state State, keys []string) error {
	delay := w.backoff
	var err error
	for attempt := 0; attempt <= w.retries; attempt++ {
		if attempt > 0 {
			w.log.Warnw("Retrying portfolio write", "attempt", attempt, "delay", delay, "error", err)
			select {
			case <-time.After(delay):
			case <-w.ctx.Done():
				return err
			}
			delay *= 2
		}
		if err = w.gateway.Save(w.ctx, state, keys...); err == nil {
			return nil
		}
	}
	return err
}

// publish never blocks; errors are dropped when nobody drains the channel.
// Only the run goroutine calls it, so errs is still open.
func (w *writer) publish(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
