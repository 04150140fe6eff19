// Package continuity detects non-working-day gaps that put an intermittent
// worker's contribution continuity at risk: a run of weekends or holidays
// immediately before a scheduled day, following a day the worker actually
// worked.
package continuity

import (
	"github.com/mfacchin/crewrota/pkg/core/holiday"
	"github.com/mfacchin/crewrota/pkg/core/model"
)

// maxLookback bounds the previous-working-day walk. This is a defensive
// limit, not a business rule; real calendars never produce a month of
// consecutive non-working days.
const maxLookback = 30

// GapDay is one non-working day inside a detected gap, labeled by holiday
// name or weekday.
type GapDay struct {
	Date  model.Date
	Label string
}

// Risk describes a continuity gap before the target date.
type Risk struct {
	PreviousWorkingDay model.Date
	GapDays            []GapDay
}

// Detect checks whether assigning the worker on target opens a continuity
// gap. It applies only to intermittent contracts and returns nil for every
// other contract type. A risk exists when there is at least one non-working
// day between the previous working day and target, and the worker had a
// non-cancelled assignment on that previous working day.
func Detect(w model.Worker, target model.Date, jobs []model.Job, holidays *holiday.Resolver) *Risk {
	if w.Contract != model.ContractIntermittent {
		return nil
	}

	prev := previousWorkingDay(target, holidays)
	if prev.Equal(target) {
		return nil
	}

	var gap []GapDay
	for d := prev.AddDays(1); d.Before(target); d = d.AddDays(1) {
		if holidays.IsWorkingDay(d) {
			continue
		}
		gap = append(gap, GapDay{Date: d, Label: holidays.DayLabel(d)})
	}
	if len(gap) == 0 {
		return nil
	}

	if !workedOn(w.ID, prev, jobs) {
		return nil
	}

	return &Risk{PreviousWorkingDay: prev, GapDays: gap}
}

// previousWorkingDay walks backward from d one day at a time, skipping
// weekends and holidays. If no working day is found within maxLookback days,
// d is returned unchanged.
func previousWorkingDay(d model.Date, holidays *holiday.Resolver) model.Date {
	candidate := d
	for i := 0; i < maxLookback; i++ {
		candidate = candidate.AddDays(-1)
		if holidays.IsWorkingDay(candidate) {
			return candidate
		}
	}
	return d
}

// workedOn reports whether the worker had at least one non-cancelled
// assignment on the given date.
func workedOn(workerID string, d model.Date, jobs []model.Job) bool {
	for _, job := range jobs {
		if job.Cancelled || !job.Date.Equal(d) {
			continue
		}
		if job.HasWorker(workerID) {
			return true
		}
	}
	return false
}
