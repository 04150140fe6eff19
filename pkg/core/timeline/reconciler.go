package timeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

// Reconcile re-resolves every worker's status for today and corrects any
// cached status that disagrees with the computed result. The correction is an
// implicit reversion, not a new status record. Reconcile is idempotent:
// running it twice produces no further change. It reports whether any worker
// was corrected.
func Reconcile(snap *model.Snapshot, today model.Date, logger *zap.Logger) bool {
	changed := false
	for i := range snap.Workers {
		w := &snap.Workers[i]
		resolved := ResolveStatus(*w, today)
		if w.CachedStatus == resolved.Status {
			continue
		}
		logger.Info("Correcting stale worker status",
			zap.String("worker_id", w.ID),
			zap.String("cached", string(w.CachedStatus)),
			zap.String("resolved", string(resolved.Status)))
		w.CachedStatus = resolved.Status
		changed = true
	}
	return changed
}

// Reconciler periodically triggers cache reconciliation: once per fixed
// interval, and again whenever the calendar date rolls over.
type Reconciler struct {
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReconciler creates a reconciler ticking at the given interval.
func NewReconciler(interval time.Duration, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run invokes fn with the current date on every tick until the context is
// cancelled. A calendar-date change triggers an extra invocation on the tick
// that observes it, so stale "today" projections never outlive midnight by
// more than one interval.
func (r *Reconciler) Run(ctx context.Context, fn func(today model.Date)) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := model.DateOf(r.now())
	fn(last)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			today := model.DateOf(r.now())
			if !today.Equal(last) {
				r.logger.Info("Calendar date changed",
					zap.String("from", last.String()),
					zap.String("to", today.String()))
				last = today
			}
			fn(today)
		}
	}
}
