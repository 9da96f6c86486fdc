package schedule

import (
	"time"

	"github.com/harrisonrobin/canvastasks/pkg/canvas"
)

// DefaultRecencyWindow is the lookback used to decide whether a course's
// assignments are still relevant.
const DefaultRecencyWindow = 14 * 24 * time.Hour

// Filter trims courses that have nothing recently due. A course is retained
// only if at least one of its assignments has a normalized due time on or
// after now minus the window; retained courses keep their recent and undated
// assignments, dropped courses vanish entirely.
type Filter struct {
	norm   *Normalizer
	window time.Duration
}

func NewFilter(norm *Normalizer, window time.Duration) *Filter {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	return &Filter{norm: norm, window: window}
}

// Apply flattens the retained courses' assignments into a single list. Order
// is not meaningful; the scheduler sorts globally.
func (f *Filter) Apply(groups []canvas.CourseAssignments, now time.Time) []canvas.Assignment {
	cutoff := now.Add(-f.window)

	var kept []canvas.Assignment
	for _, g := range groups {
		if !f.courseRetained(g, cutoff) {
			continue
		}
		for _, a := range g.Assignments {
			if a.DueAt == nil || !f.norm.NormalizeDueTime(*a.DueAt).Before(cutoff) {
				kept = append(kept, a)
			}
		}
	}
	return kept
}

// courseRetained reports whether the course has at least one assignment due
// within the window. Undated assignments do not count toward retention.
func (f *Filter) courseRetained(g canvas.CourseAssignments, cutoff time.Time) bool {
	for _, a := range g.Assignments {
		if a.DueAt != nil && !f.norm.NormalizeDueTime(*a.DueAt).Before(cutoff) {
			return true
		}
	}
	return false
}
