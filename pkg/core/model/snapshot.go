package model

import (
	"maps"
	"slices"
)

// SnapshotKey identifies the single schedule aggregate in the store. There is
// exactly one snapshot per deployment.
const SnapshotKey = "schedule"

// Snapshot is the schedule aggregate: the single root object holding the
// entire schedule state. It is the unit of concurrency control — every write
// replaces it wholesale, and every remote update replaces it wholesale.
type Snapshot struct {
	Workers  []Worker  `json:"workers"`
	Clients  []Client  `json:"clients"`
	Sites    []Site    `json:"sites"`
	Jobs     []Job     `json:"jobs"`
	Holidays []Holiday `json:"holidays"`
}

// Normalize repairs a partially-shaped snapshot: missing collections are
// filled with empty defaults and derived fields are recomputed from their
// source of truth. Malformed remote payloads are healed, never rejected.
func (s *Snapshot) Normalize() {
	if s.Workers == nil {
		s.Workers = []Worker{}
	}
	if s.Clients == nil {
		s.Clients = []Client{}
	}
	if s.Sites == nil {
		s.Sites = []Site{}
	}
	if s.Jobs == nil {
		s.Jobs = []Job{}
	}
	if s.Holidays == nil {
		s.Holidays = []Holiday{}
	}
	for i := range s.Workers {
		if s.Workers[i].StatusRecords == nil {
			s.Workers[i].StatusRecords = []StatusRecord{}
		}
		for j := range s.Workers[i].StatusRecords {
			r := &s.Workers[i].StatusRecords[j]
			if r.End == nil {
				r.Days = 0
			} else {
				r.Days = r.Start.DaysUntil(*r.End) + 1
			}
		}
	}
}

// Clone returns a deep copy of the snapshot. Neither side observes later
// mutations of the other.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Workers = slices.Clone(s.Workers)
	for i := range c.Workers {
		w := &c.Workers[i]
		w.RestrictedClientIDs = slices.Clone(w.RestrictedClientIDs)
		w.Trainings = slices.Clone(w.Trainings)
		w.StatusRecords = slices.Clone(w.StatusRecords)
		for j := range w.StatusRecords {
			if end := w.StatusRecords[j].End; end != nil {
				e := *end
				w.StatusRecords[j].End = &e
			}
		}
	}
	c.Clients = slices.Clone(s.Clients)
	for i := range c.Clients {
		c.Clients[i].RequiredTrainings = slices.Clone(s.Clients[i].RequiredTrainings)
	}
	c.Sites = slices.Clone(s.Sites)
	c.Jobs = slices.Clone(s.Jobs)
	for i := range c.Jobs {
		j := &c.Jobs[i]
		j.WorkerIDs = slices.Clone(j.WorkerIDs)
		j.TimeOverrides = maps.Clone(j.TimeOverrides)
		j.Reinforcements = slices.Clone(j.Reinforcements)
		for g := range j.Reinforcements {
			j.Reinforcements[g].WorkerIDs = slices.Clone(j.Reinforcements[g].WorkerIDs)
		}
	}
	c.Holidays = slices.Clone(s.Holidays)
	return c
}

// WorkerByID finds a worker in the snapshot, or nil.
func (s *Snapshot) WorkerByID(id string) *Worker {
	for i := range s.Workers {
		if s.Workers[i].ID == id {
			return &s.Workers[i]
		}
	}
	return nil
}

// WorkerByCode finds a worker by short code, or nil.
func (s *Snapshot) WorkerByCode(code string) *Worker {
	for i := range s.Workers {
		if s.Workers[i].Code == code {
			return &s.Workers[i]
		}
	}
	return nil
}

// ClientByID finds a client in the snapshot, or nil.
func (s *Snapshot) ClientByID(id string) *Client {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i]
		}
	}
	return nil
}

// JobByID finds a job in the snapshot, or nil.
func (s *Snapshot) JobByID(id string) *Job {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			return &s.Jobs[i]
		}
	}
	return nil
}
