// Package timeline computes a worker's time-varying status from date-ranged
// status records. The raw record list is the single source of truth; the
// denormalized cached status on the worker is only ever a projection of it.
package timeline

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

// Resolution is the outcome of resolving a worker's status for a date. Start
// and End are the active record's bounds, nil when the default applies or the
// record is open-ended.
type Resolution struct {
	Status model.Status
	Start  *model.Date
	End    *model.Date
}

// ResolveStatus returns the single active status for the reference date.
// Records are kept non-overlapping on insert, so at most one can match; if
// the invariant is ever violated the first match in ascending-start order
// wins. With no matching record the worker is available.
func ResolveStatus(w model.Worker, ref model.Date) Resolution {
	records := sortedRecords(w.StatusRecords)
	for _, rec := range records {
		if rec.Contains(ref) {
			start := rec.Start
			return Resolution{Status: rec.Status, Start: &start, End: rec.End}
		}
	}
	return Resolution{Status: model.StatusAvailable}
}

// InsertOrReplaceRecord adds a status record covering [start, end] (end nil =
// indefinite), removing every existing record whose interval intersects the
// new one at all. Overlapping records are discarded wholesale, never merged
// or split. The returned worker's record list is sorted by start ascending.
func InsertOrReplaceRecord(w model.Worker, status model.Status, start model.Date, end *model.Date) model.Worker {
	kept := make([]model.StatusRecord, 0, len(w.StatusRecords)+1)
	for _, rec := range w.StatusRecords {
		if !rec.Intersects(start, end) {
			kept = append(kept, rec)
		}
	}

	record := model.StatusRecord{
		ID:       uuid.New().String(),
		WorkerID: w.ID,
		Status:   status,
		Start:    start,
		End:      end,
	}
	if end != nil {
		record.Days = start.DaysUntil(*end) + 1
	}
	kept = append(kept, record)

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Start.Before(kept[j].Start)
	})

	w.StatusRecords = kept
	return w
}

// RemoveRecord deletes the record with the given id. Neighboring records are
// left untouched.
func RemoveRecord(w model.Worker, recordID string) model.Worker {
	kept := make([]model.StatusRecord, 0, len(w.StatusRecords))
	for _, rec := range w.StatusRecords {
		if rec.ID != recordID {
			kept = append(kept, rec)
		}
	}
	w.StatusRecords = kept
	return w
}

// Change is a scheduled status transition.
type Change struct {
	Date   model.Date
	Status model.Status
}

// NextStatusChange returns the worker's next scheduled transition after
// today, or nil when none is scheduled.
//
// When the worker is currently off, a bounded active record implies a
// reversion to available the day after it ends; an open-ended record implies
// no scheduled change. When the worker is available, the earliest record
// starting after today is the next change.
func NextStatusChange(w model.Worker, today model.Date) *Change {
	current := ResolveStatus(w, today)

	if current.Status != model.StatusAvailable {
		if current.End == nil {
			return nil
		}
		return &Change{Date: current.End.AddDays(1), Status: model.StatusAvailable}
	}

	var next *model.StatusRecord
	for i := range w.StatusRecords {
		rec := w.StatusRecords[i]
		if !rec.Start.After(today) {
			continue
		}
		if next == nil || rec.Start.Before(next.Start) {
			next = &w.StatusRecords[i]
		}
	}
	if next == nil {
		return nil
	}
	return &Change{Date: next.Start, Status: next.Status}
}

func sortedRecords(records []model.StatusRecord) []model.StatusRecord {
	out := make([]model.StatusRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
