package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

// Fetch retrieves the current snapshot and its server-assigned timestamp.
// A missing row is seeded with an empty snapshot so the first fetch always
// yields a watermark.
func (d *DB) Fetch(ctx context.Context) (model.Snapshot, time.Time, error) {
	var payload []byte
	var updatedAt time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT payload, updated_at
		FROM schedule_snapshot
		WHERE key = $1
	`, d.key).Scan(&payload, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return d.seedEmpty(ctx)
	}
	if err != nil {
		return model.Snapshot{}, time.Time{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return model.Snapshot{}, time.Time{}, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	snap.Normalize()

	return snap, updatedAt, nil
}

// FetchTimestamp retrieves only the server timestamp, for the pre-write
// staleness check.
func (d *DB) FetchTimestamp(ctx context.Context) (time.Time, error) {
	var updatedAt time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT updated_at FROM schedule_snapshot WHERE key = $1
	`, d.key).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch snapshot timestamp: %w", err)
	}
	return updatedAt, nil
}

// Replace overwrites the whole snapshot atomically and returns the new
// server-assigned timestamp.
func (d *DB) Replace(ctx context.Context, snap model.Snapshot) (time.Time, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var updatedAt time.Time
	err = d.pool.QueryRow(ctx, `
		INSERT INTO schedule_snapshot (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
		RETURNING updated_at
	`, d.key, payload).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return updatedAt, nil
}

func (d *DB) seedEmpty(ctx context.Context) (model.Snapshot, time.Time, error) {
	var snap model.Snapshot
	snap.Normalize()

	payload, err := json.Marshal(snap)
	if err != nil {
		return model.Snapshot{}, time.Time{}, fmt.Errorf("failed to encode empty snapshot: %w", err)
	}

	var updatedAt time.Time
	err = d.pool.QueryRow(ctx, `
		INSERT INTO schedule_snapshot (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET key = EXCLUDED.key
		RETURNING updated_at
	`, d.key, payload).Scan(&updatedAt)
	if err != nil {
		return model.Snapshot{}, time.Time{}, fmt.Errorf("failed to seed snapshot: %w", err)
	}

	return snap, updatedAt, nil
}
