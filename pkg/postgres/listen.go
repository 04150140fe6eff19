package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mfacchin/crewrota/pkg/db"
)

// notifyChannel is raised by the schedule_snapshot trigger on every insert
// or update (see migrations).
const notifyChannel = "schedule_snapshot_changed"

// Subscribe listens for snapshot changes on a dedicated connection. Each
// notification triggers a re-fetch of the full snapshot, since NOTIFY
// payloads are too small to carry the aggregate itself. The returned channel
// closes when the context is cancelled or the connection drops.
func (d *DB) Subscribe(ctx context.Context) (<-chan db.Notification, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", notifyChannel, err)
	}

	events := make(chan db.Notification)
	go func() {
		defer close(events)
		defer conn.Release()

		for {
			notice, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return
			}

			var payload struct {
				Key string `json:"key"`
			}
			if err := json.Unmarshal([]byte(notice.Payload), &payload); err != nil {
				continue
			}
			if payload.Key != d.key {
				continue
			}

			snap, ts, err := d.Fetch(ctx)
			if err != nil {
				continue
			}

			select {
			case events <- db.Notification{Snapshot: snap, Timestamp: ts}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
