package validate

import "github.com/mfacchin/crewrota/pkg/core/model"

// TimeOverlaps lists the worker's other non-cancelled jobs on the same date
// whose effective time windows overlap the given job's window.
//
// Overlap is reported for display only and never feeds the hard-error path of
// Validate: double-booking across jobs is flagged, not blocked.
func TimeOverlaps(w model.Worker, job model.Job, allJobs []model.Job) []model.Job {
	window := job.WindowFor(w.ID)

	var overlapping []model.Job
	for _, other := range allJobs {
		if other.ID == job.ID || other.Cancelled {
			continue
		}
		if !other.Date.Equal(job.Date) || !other.HasWorker(w.ID) {
			continue
		}
		if windowsOverlap(window, other.WindowFor(w.ID)) {
			overlapping = append(overlapping, other)
		}
	}
	return overlapping
}

// windowsOverlap compares zero-padded "15:04" bounds; lexicographic order
// matches chronological order for that layout.
func windowsOverlap(a, b model.TimeWindow) bool {
	return a.Start < b.End && b.Start < a.End
}
