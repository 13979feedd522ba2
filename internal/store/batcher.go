package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/roach88/glyphos/internal/glyph"
)

// ErrBatcherClosed reports a Put after Close.
var ErrBatcherClosed = errors.New("batcher closed")

// BatcherConfig tunes the flush triggers.
type BatcherConfig struct {
	// MaxPending flushes as soon as this many distinct ids are buffered.
	// Zero means 64.
	MaxPending int

	// FlushInterval flushes on a timer regardless of volume.
	// Zero disables the timer; flushing then happens only on MaxPending,
	// explicit Flush, or Close.
	FlushInterval time.Duration
}

// Batcher buffers writes in memory and flushes them to the store on a
// size or time trigger, amortizing fsync cost across records.
//
// This is an explicit latency/durability tradeoff the store itself never
// makes: anything buffered and not yet flushed is lost on process failure,
// and callers opting in must treat that loss as expected. Within a batch
// the last Put for an id wins, mirroring the store's own last-rename-wins
// contract.
type Batcher struct {
	store Writer

	mu      sync.Mutex
	pending map[string][]byte
	closed  bool
	flushMu sync.Mutex // serializes flushes so writes for one id never interleave

	maxPending int
	done       chan struct{}
	loopDone   chan struct{}
}

// Writer is the write surface a Batcher flushes into.
// *Store satisfies it; tests substitute failure-injecting fakes.
type Writer interface {
	Write(id string, data []byte) error
}

// NewBatcher creates a batcher in front of w and starts the timer loop
// if an interval is configured. Close must be called to stop it.
func NewBatcher(w Writer, cfg BatcherConfig) *Batcher {
	if cfg.MaxPending <= 0 {
		cfg.MaxPending = 64
	}
	b := &Batcher{
		store:      w,
		pending:    make(map[string][]byte),
		maxPending: cfg.MaxPending,
		done:       make(chan struct{}),
		loopDone:   make(chan struct{}),
	}
	if cfg.FlushInterval > 0 {
		go b.loop(cfg.FlushInterval)
	} else {
		close(b.loopDone)
	}
	return b
}

// Put buffers data for id. The write becomes durable only at the next
// flush. A malformed id is rejected immediately rather than at flush time.
func (b *Batcher) Put(id string, data []byte) error {
	if err := glyph.ValidateID(id); err != nil {
		return &KeyError{ID: id, Err: err}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBatcherClosed
	}
	b.pending[id] = data
	full := len(b.pending) >= b.maxPending
	b.mu.Unlock()

	if full {
		return b.Flush()
	}
	return nil
}

// Pending returns the number of buffered, not-yet-durable ids.
func (b *Batcher) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush writes every buffered record through the store. Records that fail
// are re-queued (unless a newer Put replaced them meanwhile) and the
// errors are joined and returned; successfully written records are gone
// from the buffer either way.
func (b *Batcher) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	batch := b.pending
	b.pending = make(map[string][]byte)
	b.mu.Unlock()

	var errs []error
	for id, data := range batch {
		if err := b.store.Write(id, data); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", id, err))
			b.mu.Lock()
			if _, replaced := b.pending[id]; !replaced {
				b.pending[id] = data
			}
			b.mu.Unlock()
		}
	}
	return errors.Join(errs...)
}

// Close stops the timer loop and performs a final flush. After Close,
// Put returns ErrBatcherClosed.
func (b *Batcher) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	close(b.done)
	<-b.loopDone
	return b.Flush()
}

// loop flushes on a fixed interval until Close.
func (b *Batcher) loop(interval time.Duration) {
	defer close(b.loopDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// Timer-driven flush errors are not lost: failed records stay
			// queued and surface on the next explicit Flush or Close.
			_ = b.Flush()
		case <-b.done:
			return
		}
	}
}
