// Package validate decides whether a worker may be placed into a job slot.
//
// Hard errors block the assignment outright; warnings flag it but let the
// caller proceed. A single call never produces both: the first applicable
// hard error short-circuits and no warnings are computed.
package validate

import (
	"fmt"
	"strings"

	"github.com/mfacchin/crewrota/pkg/core/continuity"
	"github.com/mfacchin/crewrota/pkg/core/holiday"
	"github.com/mfacchin/crewrota/pkg/core/model"
	"github.com/mfacchin/crewrota/pkg/core/timeline"
)

// Error codes for hard validation failures.
const (
	CodeStatusUnavailable = "status_unavailable"
	CodeClientRestricted  = "client_restricted"
	CodeAlreadyAssigned   = "already_assigned"
)

// Warning codes for soft validation findings.
const (
	CodeMissingTraining = "missing_training"
	CodeContinuityRisk  = "continuity_risk"
)

// ValidationError is a hard block: the assignment must not proceed.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Warning is a soft finding: the assignment may proceed, the caller decides.
type Warning struct {
	Code    string
	Message string
}

// Result is the outcome of validating an assignment. At most one of Error
// and Warning is non-nil.
type Result struct {
	Error   *ValidationError
	Warning *Warning
}

// OK reports whether the assignment is clean: no error and no warning.
func (r Result) OK() bool {
	return r.Error == nil && r.Warning == nil
}

// Validate checks whether the worker may be assigned to the job. Checks run
// in strict order: status, client restriction, duplicate assignment; only if
// none of those trigger are the training and continuity warnings evaluated.
func Validate(w model.Worker, job model.Job, allJobs []model.Job, clients []model.Client, holidays *holiday.Resolver) Result {
	if err := checkStatus(w, job.Date); err != nil {
		return Result{Error: err}
	}

	if w.IsRestrictedFrom(job.ClientID) {
		return Result{Error: &ValidationError{
			Code:    CodeClientRestricted,
			Message: fmt.Sprintf("%s is restricted from client %s", w.Name, job.ClientID),
		}}
	}

	if job.HasWorker(w.ID) {
		return Result{Error: &ValidationError{
			Code:    CodeAlreadyAssigned,
			Message: fmt.Sprintf("%s is already assigned to this job", w.Name),
		}}
	}

	if warning := checkTraining(w, job.ClientID, clients); warning != nil {
		return Result{Warning: warning}
	}

	if risk := continuity.Detect(w, job.Date, allJobs, holidays); risk != nil {
		labels := make([]string, len(risk.GapDays))
		for i, day := range risk.GapDays {
			labels[i] = day.Label
		}
		return Result{Warning: &Warning{
			Code: CodeContinuityRisk,
			Message: fmt.Sprintf("continuity risk: %s last worked on %s, gap of %s before this job",
				w.Name, risk.PreviousWorkingDay, strings.Join(labels, ", ")),
		}}
	}

	return Result{}
}

// checkStatus resolves the worker's status for the job date. A non-available
// status is a hard error unless its record ends before the job date, in which
// case the implicit reversion to available applies.
func checkStatus(w model.Worker, jobDate model.Date) *ValidationError {
	resolved := timeline.ResolveStatus(w, jobDate)
	if resolved.Status == model.StatusAvailable {
		return nil
	}
	if resolved.End != nil && jobDate.After(*resolved.End) {
		return nil
	}

	msg := fmt.Sprintf("%s is %s", w.Name, resolved.Status.Label())
	if resolved.End != nil {
		msg = fmt.Sprintf("%s until %s", msg, resolved.End)
	}
	return &ValidationError{Code: CodeStatusUnavailable, Message: msg}
}

// checkTraining compares the client's required trainings against the
// worker's completed set.
func checkTraining(w model.Worker, clientID string, clients []model.Client) *Warning {
	var client *model.Client
	for i := range clients {
		if clients[i].ID == clientID {
			client = &clients[i]
			break
		}
	}
	if client == nil || len(client.RequiredTrainings) == 0 {
		return nil
	}

	var missing []string
	for _, required := range client.RequiredTrainings {
		if !w.HasTraining(required) {
			missing = append(missing, required)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return &Warning{
		Code:    CodeMissingTraining,
		Message: fmt.Sprintf("%s is missing required training: %s", w.Name, strings.Join(missing, ", ")),
	}
}
