package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_NormalizeFillsMissingCollections(t *testing.T) {
	var snap Snapshot
	snap.Normalize()

	assert.NotNil(t, snap.Workers)
	assert.NotNil(t, snap.Clients)
	assert.NotNil(t, snap.Sites)
	assert.NotNil(t, snap.Jobs)
	assert.NotNil(t, snap.Holidays)
}

func TestSnapshot_NormalizeFillsWorkerRecords(t *testing.T) {
	snap := Snapshot{Workers: []Worker{{ID: "w1"}}}
	snap.Normalize()

	assert.NotNil(t, snap.Workers[0].StatusRecords)
}

func TestSnapshot_NormalizeIsIdempotent(t *testing.T) {
	snap := Snapshot{
		Workers: []Worker{{ID: "w1", StatusRecords: []StatusRecord{{ID: "r1"}}}},
		Jobs:    []Job{{ID: "j1"}},
	}
	snap.Normalize()
	first, err := json.Marshal(snap)
	require.NoError(t, err)

	snap.Normalize()
	second, err := json.Marshal(snap)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSnapshot_NormalizeRecomputesDayCounts(t *testing.T) {
	end := NewDate(2025, time.June, 10)
	snap := Snapshot{Workers: []Worker{{
		ID: "w1",
		StatusRecords: []StatusRecord{
			{ID: "r1", Status: StatusVacation, Start: NewDate(2025, time.June, 1), End: &end, Days: 99},
			{ID: "r2", Status: StatusMedicalLeave, Start: NewDate(2025, time.June, 12), Days: 7},
		},
	}}}

	// Days is derived from the interval; stale counts in remote payloads
	// are corrected, open-ended records carry zero.
	snap.Normalize()
	assert.Equal(t, 10, snap.Workers[0].StatusRecords[0].Days)
	assert.Zero(t, snap.Workers[0].StatusRecords[1].Days)
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	end := NewDate(2025, time.June, 10)
	snap := Snapshot{
		Workers: []Worker{{
			ID:        "w1",
			Trainings: []string{"forklift"},
			StatusRecords: []StatusRecord{{
				ID: "r1", Status: StatusVacation, Start: NewDate(2025, time.June, 1), End: &end, Days: 10,
			}},
		}},
		Jobs: []Job{{
			ID:             "j1",
			WorkerIDs:      []string{"w1"},
			TimeOverrides:  map[string]TimeWindow{"w1": {Start: "09:00", End: "17:00"}},
			Reinforcements: []ReinforcementGroup{{Start: "12:00", WorkerIDs: []string{"w2"}}},
		}},
	}

	clone := snap.Clone()
	clone.Workers[0].Trainings[0] = "first_aid"
	*clone.Workers[0].StatusRecords[0].End = NewDate(2025, time.June, 20)
	clone.Jobs[0].WorkerIDs[0] = "w9"
	clone.Jobs[0].TimeOverrides["w1"] = TimeWindow{Start: "00:00", End: "01:00"}
	clone.Jobs[0].Reinforcements[0].WorkerIDs[0] = "w9"

	assert.Equal(t, "forklift", snap.Workers[0].Trainings[0])
	assert.Equal(t, NewDate(2025, time.June, 10), *snap.Workers[0].StatusRecords[0].End)
	assert.Equal(t, "w1", snap.Jobs[0].WorkerIDs[0])
	assert.Equal(t, TimeWindow{Start: "09:00", End: "17:00"}, snap.Jobs[0].TimeOverrides["w1"])
	assert.Equal(t, "w2", snap.Jobs[0].Reinforcements[0].WorkerIDs[0])
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	end := NewDate(2025, time.June, 10)
	snap := Snapshot{
		Workers: []Worker{{
			ID:                  "w1",
			Code:                "AB",
			Name:                "Anna Bianchi",
			Contract:            ContractIntermittent,
			RestrictedClientIDs: []string{"c2"},
			Trainings:           []string{"forklift"},
			StatusRecords: []StatusRecord{{
				ID:       "r1",
				WorkerID: "w1",
				Status:   StatusVacation,
				Start:    NewDate(2025, time.June, 1),
				End:      &end,
				Days:     10,
			}},
			CachedStatus: StatusVacation,
		}},
		Clients: []Client{{ID: "c1", Name: "Acme", RequiredTrainings: []string{"forklift"}}},
		Sites:   []Site{{ID: "s1", ClientID: "c1", Name: "Depot"}},
		Jobs: []Job{{
			ID:            "j1",
			Date:          NewDate(2025, time.June, 2),
			ClientID:      "c1",
			SiteID:        "s1",
			Window:        TimeWindow{Start: "08:00", End: "16:00"},
			RequiredCount: 2,
			WorkerIDs:     []string{"w1"},
			TimeOverrides: map[string]TimeWindow{"w1": {Start: "09:00", End: "17:00"}},
			Reinforcements: []ReinforcementGroup{
				{Start: "12:00", WorkerIDs: []string{"w2"}},
			},
		}},
		Holidays: []Holiday{{Date: NewDate(2025, time.June, 24), Name: "St. John's Day", Regional: true}},
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, snap, back)
}

func TestJob_HasWorkerIncludesReinforcements(t *testing.T) {
	job := Job{
		WorkerIDs: []string{"w1"},
		Reinforcements: []ReinforcementGroup{
			{Start: "14:00", WorkerIDs: []string{"w2"}},
		},
	}

	assert.True(t, job.HasWorker("w1"))
	assert.True(t, job.HasWorker("w2"))
	assert.False(t, job.HasWorker("w3"))
}

func TestJob_CancelledAndFinishedAreExclusive(t *testing.T) {
	job := Job{ID: "j1"}
	require.NoError(t, job.MarkFinished())
	assert.Error(t, job.MarkCancelled())

	other := Job{ID: "j2"}
	require.NoError(t, other.MarkCancelled())
	assert.Error(t, other.MarkFinished())
}

func TestJob_WindowForHonorsOverrides(t *testing.T) {
	job := Job{
		Window:        TimeWindow{Start: "08:00", End: "16:00"},
		TimeOverrides: map[string]TimeWindow{"w1": {Start: "10:00", End: "18:00"}},
	}

	assert.Equal(t, TimeWindow{Start: "10:00", End: "18:00"}, job.WindowFor("w1"))
	assert.Equal(t, TimeWindow{Start: "08:00", End: "16:00"}, job.WindowFor("w2"))
}
