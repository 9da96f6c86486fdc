package schedule

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/canvastasks/pkg/canvas"
)

// DefaultTimezone is the destination civil zone for reminders.
const DefaultTimezone = "America/Denver"

// Normalizer converts source timestamps into the destination civil zone and
// nudges midnight due times to a reminder-friendly hour.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(timezone string) (*Normalizer, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Normalizer{loc: loc}, nil
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// ToLocal converts a source timestamp to the destination zone. Canvas reports
// times in UTC; timestamps parsed without an offset already carry UTC, so a
// plain zone conversion is sufficient. nil passes through.
func (n *Normalizer) ToLocal(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(n.loc)
	return &local
}

// NormalizeDueTime replaces an exact-midnight time-of-day with 18:00 on the
// same civil date. Canvas uses 00:00:00 to mean "end of day", not a literal
// time a student should be reminded at.
func (n *Normalizer) NormalizeDueTime(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 18, 0, 0, 0, t.Location())
	}
	return t
}

// LocalizeGroups returns a copy of groups with every due timestamp converted
// to the destination zone. Input groups are not mutated.
func (n *Normalizer) LocalizeGroups(groups []canvas.CourseAssignments) []canvas.CourseAssignments {
	out := make([]canvas.CourseAssignments, len(groups))
	for i, g := range groups {
		localized := g
		localized.Assignments = make([]canvas.Assignment, len(g.Assignments))
		for j, a := range g.Assignments {
			a.DueAt = n.ToLocal(a.DueAt)
			localized.Assignments[j] = a
		}
		out[i] = localized
	}
	return out
}
