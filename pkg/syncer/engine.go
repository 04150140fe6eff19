// Package syncer keeps one in-memory copy of the schedule aggregate
// consistent with the shared store across concurrent editors, without
// server-side locking.
//
// Writes are optimistic: local mutations are coalesced through a debounce
// window, and before committing the engine compares the store's current
// timestamp against its local watermark. A difference beyond a fixed
// tolerance aborts the write as a conflict. Remote updates apply under
// last-writer-wins: any notification carrying a strictly newer timestamp
// replaces the whole in-memory aggregate, discarding unflushed local edits.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/db"
)

const (
	// DefaultDebounce is the write-coalescing window: bursts of edits
	// inside it produce a single store write.
	DefaultDebounce = 1 * time.Second

	// DefaultTolerance is the maximum |server − local| timestamp skew
	// accepted at write time. It absorbs clock skew, not concurrent edits.
	DefaultTolerance = 5 * time.Second
)

// Options configures an Engine. Zero values take the package defaults.
type Options struct {
	Debounce  time.Duration
	Tolerance time.Duration
}

// Engine owns the process-local copy of the schedule aggregate. Create one
// per process with New and tear it down with Close.
type Engine struct {
	store     db.SnapshotStore
	notifier  db.SnapshotNotifier
	logger    *zap.Logger
	debounce  time.Duration
	tolerance time.Duration

	mu        sync.Mutex
	snap      model.Snapshot
	watermark time.Time
	dirty     bool
	gen       uint64
	timer     *time.Timer
	closed    bool

	flushCtx context.Context
	errs     chan error
}

// New fetches the current aggregate, initializes the local watermark from its
// timestamp, and returns a ready engine.
func New(ctx context.Context, store db.SnapshotStore, notifier db.SnapshotNotifier, logger *zap.Logger, opts Options) (*Engine, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	snap, ts, err := store.Fetch(ctx)
	if err != nil {
		return nil, &TransientError{Op: "initial fetch", Err: err}
	}
	snap.Normalize()

	logger.Info("Sync engine initialized", zap.Time("watermark", ts))

	return &Engine{
		store:     store,
		notifier:  notifier,
		logger:    logger,
		debounce:  opts.Debounce,
		tolerance: opts.Tolerance,
		snap:      snap,
		watermark: ts,
		flushCtx:  ctx,
		errs:      make(chan error, 16),
	}, nil
}

// Snapshot returns a copy of the current in-memory aggregate.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// Watermark returns the last store timestamp this engine observed or wrote.
func (e *Engine) Watermark() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.watermark
}

// Errors delivers failures from debounced background flushes. The channel is
// buffered; when nobody drains it, errors are logged and dropped. Close
// closes the channel.
func (e *Engine) Errors() <-chan error {
	return e.errs
}

// Mutate applies fn to the in-memory aggregate. fn reports whether it changed
// anything; a change schedules a debounced flush, superseding any flush
// already pending.
func (e *Engine) Mutate(fn func(*model.Snapshot) bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !fn(&e.snap) {
		return
	}
	e.dirty = true
	e.gen++

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.backgroundFlush)
}

func (e *Engine) backgroundFlush() {
	if err := e.Flush(e.flushCtx); err != nil {
		e.logger.Warn("Debounced flush failed", zap.Error(err))
		e.reportError(err)
	}
}

func (e *Engine) reportError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.errs <- err:
	default:
	}
}

// Flush writes the aggregate to the store immediately, if there are local
// changes. Before writing it re-fetches the store timestamp: a deviation from
// the watermark beyond the tolerance aborts with ErrConflict and sends
// nothing. On success the watermark advances to the new server timestamp.
// Mutations that land while the write is in flight stay pending and are
// delivered by the next flush.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	if !e.dirty {
		e.mu.Unlock()
		return nil
	}
	// Deep copy: the store round-trip runs outside the lock, and concurrent
	// mutations must not reach into the payload being serialized.
	snap := e.snap.Clone()
	watermark := e.watermark
	gen := e.gen
	e.mu.Unlock()

	serverTS, err := e.store.FetchTimestamp(ctx)
	if err != nil {
		return &TransientError{Op: "timestamp check", Err: err}
	}

	if absDuration(serverTS.Sub(watermark)) > e.tolerance {
		e.logger.Warn("Aborting write, local watermark is stale",
			zap.Time("server", serverTS),
			zap.Time("local", watermark))
		return fmt.Errorf("%w: server %s, local %s", ErrConflict,
			serverTS.Format(time.RFC3339), watermark.Format(time.RFC3339))
	}

	newTS, err := e.store.Replace(ctx, snap)
	if err != nil {
		return &TransientError{Op: "replace", Err: err}
	}

	e.mu.Lock()
	if newTS.After(e.watermark) {
		e.watermark = newTS
	}
	// A mutation that landed mid-write bumped the generation; leave dirty
	// set so its pending timer flushes the newer state.
	if e.gen == gen {
		e.dirty = false
	}
	e.mu.Unlock()

	e.logger.Info("Snapshot written", zap.Time("watermark", newTS))
	return nil
}

// Reload discards local changes and replaces the aggregate with a fresh
// fetch. This is the manual reconciliation path after ErrConflict.
func (e *Engine) Reload(ctx context.Context) error {
	snap, ts, err := e.store.Fetch(ctx)
	if err != nil {
		return &TransientError{Op: "reload", Err: err}
	}
	snap.Normalize()

	e.mu.Lock()
	e.snap = snap
	e.watermark = ts
	e.dirty = false
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()

	e.logger.Info("Snapshot reloaded", zap.Time("watermark", ts))
	return nil
}

// Run subscribes to the change-notification stream and applies remote
// updates until the context is cancelled or the stream closes.
func (e *Engine) Run(ctx context.Context) error {
	events, err := e.notifier.Subscribe(ctx)
	if err != nil {
		return &TransientError{Op: "subscribe", Err: err}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-events:
			if !ok {
				return nil
			}
			e.applyRemote(n)
		}
	}
}

// applyRemote applies a push notification under last-writer-wins. Only a
// strictly newer timestamp wins; notifications at or before the watermark are
// echoes or stale and are ignored. Transport order does not matter, the
// timestamp comparison alone decides.
func (e *Engine) applyRemote(n db.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !n.Timestamp.After(e.watermark) {
		e.logger.Debug("Ignoring stale notification",
			zap.Time("notified", n.Timestamp),
			zap.Time("watermark", e.watermark))
		return
	}

	n.Snapshot.Normalize()
	e.snap = n.Snapshot
	e.watermark = n.Timestamp
	e.dirty = false
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}

	e.logger.Info("Applied remote snapshot", zap.Time("watermark", n.Timestamp))
}

// Close cancels any pending debounced flush and closes the error channel so
// drain loops terminate. In-flight writes are not cancelled. Close is
// idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	close(e.errs)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
