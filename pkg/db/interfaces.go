// Package db defines the storage boundary for the schedule aggregate. The
// aggregate is persisted as a single keyed document: there is no partial or
// paginated layout, every read and write covers the whole snapshot.
package db

import (
	"context"
	"time"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

// Notification is a change event for the aggregate: the full new snapshot
// plus the server-assigned timestamp of the write that produced it.
type Notification struct {
	Snapshot  model.Snapshot
	Timestamp time.Time
}

// SnapshotStore persists the schedule aggregate under a fixed key.
type SnapshotStore interface {
	// Fetch returns the current aggregate and its server-assigned
	// last-update timestamp.
	Fetch(ctx context.Context) (model.Snapshot, time.Time, error)

	// FetchTimestamp returns only the current server timestamp, used for
	// the pre-write staleness check.
	FetchTimestamp(ctx context.Context) (time.Time, error)

	// Replace atomically overwrites the whole aggregate and returns the
	// new server-assigned timestamp.
	Replace(ctx context.Context, snap model.Snapshot) (time.Time, error)
}

// SnapshotNotifier delivers change notifications for the aggregate whenever
// the store is updated, by this process or any other.
type SnapshotNotifier interface {
	// Subscribe returns a channel of change events. The channel is closed
	// when the context is cancelled or the subscription fails.
	Subscribe(ctx context.Context) (<-chan Notification, error)
}
