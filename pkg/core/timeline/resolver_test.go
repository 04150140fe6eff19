package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

func datePtr(d model.Date) *model.Date {
	return &d
}

func vacationWorker() model.Worker {
	// Single vacation record 2025-06-01 .. 2025-06-10.
	return model.Worker{
		ID: "w1",
		StatusRecords: []model.StatusRecord{{
			ID:       "r1",
			WorkerID: "w1",
			Status:   model.StatusVacation,
			Start:    model.NewDate(2025, time.June, 1),
			End:      datePtr(model.NewDate(2025, time.June, 10)),
			Days:     10,
		}},
	}
}

func TestResolveStatus_NoRecordsDefaultsToAvailable(t *testing.T) {
	w := model.Worker{ID: "w1"}

	res := ResolveStatus(w, model.NewDate(2025, time.June, 5))
	assert.Equal(t, model.StatusAvailable, res.Status)
	assert.Nil(t, res.Start)
	assert.Nil(t, res.End)
}

func TestResolveStatus_InsideRecord(t *testing.T) {
	w := vacationWorker()

	res := ResolveStatus(w, model.NewDate(2025, time.June, 5))
	assert.Equal(t, model.StatusVacation, res.Status)
	require.NotNil(t, res.Start)
	require.NotNil(t, res.End)
	assert.Equal(t, "2025-06-01", res.Start.String())
	assert.Equal(t, "2025-06-10", res.End.String())
}

func TestResolveStatus_BoundsAreInclusive(t *testing.T) {
	w := vacationWorker()

	assert.Equal(t, model.StatusVacation, ResolveStatus(w, model.NewDate(2025, time.June, 1)).Status)
	assert.Equal(t, model.StatusVacation, ResolveStatus(w, model.NewDate(2025, time.June, 10)).Status)
	assert.Equal(t, model.StatusAvailable, ResolveStatus(w, model.NewDate(2025, time.May, 31)).Status)
	assert.Equal(t, model.StatusAvailable, ResolveStatus(w, model.NewDate(2025, time.June, 11)).Status)
}

func TestResolveStatus_OpenEndedRecord(t *testing.T) {
	w := model.Worker{
		ID: "w1",
		StatusRecords: []model.StatusRecord{{
			ID:     "r1",
			Status: model.StatusMedicalLeave,
			Start:  model.NewDate(2025, time.June, 1),
		}},
	}

	res := ResolveStatus(w, model.NewDate(2030, time.January, 1))
	assert.Equal(t, model.StatusMedicalLeave, res.Status)
	assert.Nil(t, res.End)
}

func TestResolveStatus_FirstMatchWinsOnViolatedInvariant(t *testing.T) {
	// Overlapping records should not exist, but if they do, the earliest
	// start wins regardless of slice order.
	w := model.Worker{
		ID: "w1",
		StatusRecords: []model.StatusRecord{
			{
				ID:     "later",
				Status: model.StatusParentalLeave,
				Start:  model.NewDate(2025, time.June, 3),
				End:    datePtr(model.NewDate(2025, time.June, 20)),
			},
			{
				ID:     "earlier",
				Status: model.StatusVacation,
				Start:  model.NewDate(2025, time.June, 1),
				End:    datePtr(model.NewDate(2025, time.June, 10)),
			},
		},
	}

	res := ResolveStatus(w, model.NewDate(2025, time.June, 5))
	assert.Equal(t, model.StatusVacation, res.Status)
}

func TestInsertOrReplaceRecord_ReplacesOverlapping(t *testing.T) {
	w := vacationWorker()

	updated := InsertOrReplaceRecord(w,
		model.StatusMedicalLeave,
		model.NewDate(2025, time.June, 8),
		datePtr(model.NewDate(2025, time.June, 12)))

	// The partially overlapping vacation record is discarded wholesale.
	require.Len(t, updated.StatusRecords, 1)
	rec := updated.StatusRecords[0]
	assert.Equal(t, model.StatusMedicalLeave, rec.Status)
	assert.Equal(t, "2025-06-08", rec.Start.String())
	assert.Equal(t, "2025-06-12", rec.End.String())
	assert.Equal(t, 5, rec.Days)
	assert.Equal(t, "w1", rec.WorkerID)
	assert.NotEmpty(t, rec.ID)
}

func TestInsertOrReplaceRecord_KeepsDisjointRecordsSorted(t *testing.T) {
	w := vacationWorker()

	updated := InsertOrReplaceRecord(w,
		model.StatusParentalLeave,
		model.NewDate(2025, time.May, 1),
		datePtr(model.NewDate(2025, time.May, 15)))

	require.Len(t, updated.StatusRecords, 2)
	assert.Equal(t, "2025-05-01", updated.StatusRecords[0].Start.String())
	assert.Equal(t, "2025-06-01", updated.StatusRecords[1].Start.String())
}

func TestInsertOrReplaceRecord_OpenEndedSwallowsEverythingAfter(t *testing.T) {
	w := vacationWorker()

	updated := InsertOrReplaceRecord(w, model.StatusMedicalLeave, model.NewDate(2025, time.May, 1), nil)

	require.Len(t, updated.StatusRecords, 1)
	rec := updated.StatusRecords[0]
	assert.Equal(t, model.StatusMedicalLeave, rec.Status)
	assert.Nil(t, rec.End)
	assert.Zero(t, rec.Days)
}

func TestInsertOrReplaceRecord_NoOverlapAfterAnyInsert(t *testing.T) {
	w := vacationWorker()
	w = InsertOrReplaceRecord(w, model.StatusParentalLeave,
		model.NewDate(2025, time.June, 5), datePtr(model.NewDate(2025, time.June, 20)))
	w = InsertOrReplaceRecord(w, model.StatusVacation,
		model.NewDate(2025, time.June, 18), datePtr(model.NewDate(2025, time.June, 25)))

	for i, a := range w.StatusRecords {
		for j, b := range w.StatusRecords {
			if i == j {
				continue
			}
			assert.False(t, a.Intersects(b.Start, b.End),
				"records %d and %d overlap", i, j)
		}
	}
}

func TestRemoveRecord(t *testing.T) {
	w := vacationWorker()

	updated := RemoveRecord(w, "r1")
	assert.Empty(t, updated.StatusRecords)

	// Unknown ids are a no-op.
	updated = RemoveRecord(vacationWorker(), "missing")
	assert.Len(t, updated.StatusRecords, 1)
}

func TestNextStatusChange_NoRecords(t *testing.T) {
	w := model.Worker{ID: "w1"}

	assert.Nil(t, NextStatusChange(w, model.NewDate(2025, time.June, 5)))
}

func TestNextStatusChange_BoundedActiveRecord(t *testing.T) {
	w := vacationWorker()

	change := NextStatusChange(w, model.NewDate(2025, time.June, 5))
	require.NotNil(t, change)
	assert.Equal(t, "2025-06-11", change.Date.String())
	assert.Equal(t, model.StatusAvailable, change.Status)
}

func TestNextStatusChange_OpenEndedActiveRecord(t *testing.T) {
	w := model.Worker{
		ID: "w1",
		StatusRecords: []model.StatusRecord{{
			ID:     "r1",
			Status: model.StatusMedicalLeave,
			Start:  model.NewDate(2025, time.June, 1),
		}},
	}

	assert.Nil(t, NextStatusChange(w, model.NewDate(2025, time.June, 5)))
}

func TestNextStatusChange_AvailableWithFutureRecord(t *testing.T) {
	w := vacationWorker()

	change := NextStatusChange(w, model.NewDate(2025, time.May, 20))
	require.NotNil(t, change)
	assert.Equal(t, "2025-06-01", change.Date.String())
	assert.Equal(t, model.StatusVacation, change.Status)
}

func TestNextStatusChange_AvailableWithNoFutureRecord(t *testing.T) {
	w := vacationWorker()

	assert.Nil(t, NextStatusChange(w, model.NewDate(2025, time.July, 1)))
}
