// Package holiday resolves whether a calendar date is a working day.
//
// Resolution precedence: explicitly configured override holidays, then the
// dated holiday list carried in the schedule aggregate, then the built-in
// recurring nationwide rules. Weekends are always non-working.
package holiday

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

// Rule is a recurring holiday expressed as an RRULE string, e.g.
// "FREQ=YEARLY;BYMONTH=8;BYMONTHDAY=15".
type Rule struct {
	Name     string
	RRule    string
	Regional bool
}

// nationwideRules is the built-in recurring month-day table.
var nationwideRules = []Rule{
	{Name: "New Year's Day", RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
	{Name: "Epiphany", RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=6"},
	{Name: "Liberation Day", RRule: "FREQ=YEARLY;BYMONTH=4;BYMONTHDAY=25"},
	{Name: "Labour Day", RRule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=1"},
	{Name: "Republic Day", RRule: "FREQ=YEARLY;BYMONTH=6;BYMONTHDAY=2"},
	{Name: "Assumption Day", RRule: "FREQ=YEARLY;BYMONTH=8;BYMONTHDAY=15"},
	{Name: "All Saints' Day", RRule: "FREQ=YEARLY;BYMONTH=11;BYMONTHDAY=1"},
	{Name: "Immaculate Conception", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=8"},
	{Name: "Christmas Day", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"},
	{Name: "St. Stephen's Day", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=26"},
}

type namedRule struct {
	rule     *rrule.RRule
	name     string
	regional bool
}

// Resolver answers holiday and working-day questions for dates.
type Resolver struct {
	overrides map[string]model.Holiday
	dated     map[string]model.Holiday
	rules     []namedRule
}

// NewResolver builds a resolver from configured override holidays, the dated
// holiday list (typically the aggregate's holiday collection), and any extra
// recurring rules on top of the built-in nationwide table.
func NewResolver(overrides, dated []model.Holiday, extra []Rule) (*Resolver, error) {
	r := &Resolver{
		overrides: make(map[string]model.Holiday, len(overrides)),
		dated:     make(map[string]model.Holiday, len(dated)),
	}
	for _, h := range overrides {
		r.overrides[h.Date.String()] = h
	}
	for _, h := range dated {
		r.dated[h.Date.String()] = h
	}

	for _, rule := range append(append([]Rule{}, nationwideRules...), extra...) {
		parsed, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday rule %q: %w", rule.Name, err)
		}
		// Anchor the recurrence well before any schedulable date.
		parsed.DTStart(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC))
		r.rules = append(r.rules, namedRule{rule: parsed, name: rule.Name, regional: rule.Regional})
	}

	return r, nil
}

// Resolve returns the holiday falling on the given date, or nil.
func (r *Resolver) Resolve(d model.Date) *model.Holiday {
	key := d.String()
	if h, ok := r.overrides[key]; ok {
		return &h
	}
	if h, ok := r.dated[key]; ok {
		return &h
	}
	dayStart := d.Time()
	dayEnd := dayStart.Add(24*time.Hour - time.Second)
	for _, nr := range r.rules {
		if len(nr.rule.Between(dayStart, dayEnd, true)) > 0 {
			return &model.Holiday{Date: d, Name: nr.name, Regional: nr.regional}
		}
	}
	return nil
}

// IsWorkingDay reports whether the date is neither a weekend nor a holiday.
func (r *Resolver) IsWorkingDay(d model.Date) bool {
	if d.IsWeekend() {
		return false
	}
	return r.Resolve(d) == nil
}

// DayLabel names a non-working date: the holiday name when one applies,
// otherwise the weekday name ("Saturday", "Sunday").
func (r *Resolver) DayLabel(d model.Date) string {
	if h := r.Resolve(d); h != nil {
		return h.Name
	}
	return d.Weekday().String()
}
