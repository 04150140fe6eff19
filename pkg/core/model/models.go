package model

import "fmt"

// Status is a worker's availability status on a given day.
type Status string

const (
	StatusAvailable     Status = "available"
	StatusVacation      Status = "vacation"
	StatusMedicalLeave  Status = "medical_leave"
	StatusParentalLeave Status = "parental_leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusVacation, StatusMedicalLeave, StatusParentalLeave:
		return true
	}
	return false
}

// Label returns the human-readable form used in validation messages.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusVacation:
		return "on vacation"
	case StatusMedicalLeave:
		return "on medical leave"
	case StatusParentalLeave:
		return "on parental leave"
	}
	return string(s)
}

// ContractType classifies a worker's employment contract.
type ContractType string

const (
	ContractPermanent    ContractType = "permanent"
	ContractIntermittent ContractType = "intermittent"
	ContractSelfEmployed ContractType = "self_employed"
	ContractFreelance    ContractType = "freelance"
)

func (c ContractType) IsValid() bool {
	switch c {
	case ContractPermanent, ContractIntermittent, ContractSelfEmployed, ContractFreelance:
		return true
	}
	return false
}

// StatusRecord is a date-ranged status entry on a worker's timeline.
// End nil means the record is open-ended.
type StatusRecord struct {
	ID       string `json:"id"`
	WorkerID string `json:"workerId"`
	Status   Status `json:"status"`
	Start    Date   `json:"start"`
	End      *Date  `json:"end,omitempty"`
	// Days is the derived inclusive day count, zero for open-ended records.
	Days int `json:"days"`
}

// Contains reports whether the record's interval covers the given date.
func (r StatusRecord) Contains(d Date) bool {
	if d.Before(r.Start) {
		return false
	}
	return r.End == nil || !d.After(*r.End)
}

// Intersects reports whether the record's interval intersects [start, end]
// at all, where a nil end extends to infinity.
func (r StatusRecord) Intersects(start Date, end *Date) bool {
	if end != nil && end.Before(r.Start) {
		return false
	}
	if r.End != nil && r.End.Before(start) {
		return false
	}
	return true
}

// Worker is a schedulable member of the workforce.
//
// CachedStatus is a denormalized projection of the status timeline. It is
// recomputed by the reconciler and must never be read as authoritative; the
// timeline resolver is the single source of truth.
type Worker struct {
	ID                  string         `json:"id"`
	Code                string         `json:"code"`
	Name                string         `json:"name"`
	Contract            ContractType   `json:"contract"`
	RestrictedClientIDs []string       `json:"restrictedClientIds,omitempty"`
	Trainings           []string       `json:"trainings,omitempty"`
	StatusRecords       []StatusRecord `json:"statusRecords,omitempty"`
	CachedStatus        Status         `json:"cachedStatus,omitempty"`
}

// IsRestrictedFrom reports whether the worker may not serve the given client.
func (w Worker) IsRestrictedFrom(clientID string) bool {
	for _, id := range w.RestrictedClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// HasTraining reports whether the worker completed the given training.
func (w Worker) HasTraining(training string) bool {
	for _, t := range w.Trainings {
		if t == training {
			return true
		}
	}
	return false
}

// Client is a customer the operation staffs jobs for.
type Client struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	RequiredTrainings []string `json:"requiredTrainings,omitempty"`
}

// Site is a client work location.
type Site struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
}

// TimeWindow is a start/end pair in "15:04" form.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReinforcementGroup is a secondary cohort of workers joining an existing job
// at a later start time the same day.
type ReinforcementGroup struct {
	Start     string   `json:"start"`
	WorkerIDs []string `json:"workerIds"`
}

// Job is a dated job slot at a client site.
type Job struct {
	ID             string                `json:"id"`
	Date           Date                  `json:"date"`
	ClientID       string                `json:"clientId"`
	SiteID         string                `json:"siteId"`
	Window         TimeWindow            `json:"window"`
	RequiredCount  int                   `json:"requiredCount"`
	WorkerIDs      []string              `json:"workerIds,omitempty"`
	TimeOverrides  map[string]TimeWindow `json:"timeOverrides,omitempty"`
	Reinforcements []ReinforcementGroup  `json:"reinforcements,omitempty"`
	Cancelled      bool                  `json:"cancelled,omitempty"`
	Finished       bool                  `json:"finished,omitempty"`
}

// HasWorker reports whether the worker is assigned to the job, either in the
// main cohort or in a reinforcement group.
func (j Job) HasWorker(workerID string) bool {
	for _, id := range j.WorkerIDs {
		if id == workerID {
			return true
		}
	}
	for _, group := range j.Reinforcements {
		for _, id := range group.WorkerIDs {
			if id == workerID {
				return true
			}
		}
	}
	return false
}

// WindowFor returns the effective time window for a worker, honoring
// per-worker overrides.
func (j Job) WindowFor(workerID string) TimeWindow {
	if override, ok := j.TimeOverrides[workerID]; ok {
		return override
	}
	return j.Window
}

// MarkCancelled flags the job as cancelled. Cancelled and finished are
// mutually exclusive.
func (j *Job) MarkCancelled() error {
	if j.Finished {
		return fmt.Errorf("job %s is already finished", j.ID)
	}
	j.Cancelled = true
	return nil
}

// MarkFinished flags the job as finished. Cancelled and finished are
// mutually exclusive.
func (j *Job) MarkFinished() error {
	if j.Cancelled {
		return fmt.Errorf("job %s is cancelled", j.ID)
	}
	j.Finished = true
	return nil
}

// Holiday is a single non-working day, either nationwide or regional.
type Holiday struct {
	Date     Date   `json:"date"`
	Name     string `json:"name"`
	Regional bool   `json:"regional,omitempty"`
}
