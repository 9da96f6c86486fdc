package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harrisonrobin/canvastasks/pkg/canvas"
)

const (
	// reminderHour is the local hour every reminder fires at.
	reminderHour = 8
	// leadDays is how many calendar days before the due date a reminder fires.
	leadDays = 1
	// seriesLength and seriesSpacingDays shape the periodic reminder series
	// for assignments without a due date.
	seriesLength      = 4
	seriesSpacingDays = 30

	periodicNotes  = "No due date assignment — periodic reminder"
	dueNotesLayout = "2006-01-02 15:04 MST"
)

// Entry is one concrete reminder the sync engine should ensure exists
// remotely. Periodic marks entries from the no-due-date series so the summary
// can bucket them separately.
type Entry struct {
	Title    string
	Due      time.Time
	Notes    string
	Periodic bool
}

// Plan is the ordered reminder schedule for one run.
type Plan struct {
	Entries []Entry
}

// Titles returns the set of remote task titles this plan owns.
func (p Plan) Titles() map[string]bool {
	titles := make(map[string]bool, len(p.Entries))
	for _, e := range p.Entries {
		titles[e.Title] = true
	}
	return titles
}

// TaskTitle derives the remote task title used as the de-duplication key:
// the course name truncated at its first hyphen and trimmed, an em dash, then
// the assignment name. Two courses sharing a prefix (or two identically named
// assignments) can collide; that lossiness is inherited behavior and any
// change here breaks matching against previously synced tasks.
func TaskTitle(courseName, assignmentName string) string {
	courseShort, _, _ := strings.Cut(courseName, "-")
	return strings.TrimSpace(courseShort) + " — " + assignmentName
}

// SortByDue orders assignments by due time ascending, with undated
// assignments after all dated ones. The input is not mutated.
func SortByDue(assignments []canvas.Assignment) []canvas.Assignment {
	sorted := make([]canvas.Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]).Before(sortKey(sorted[j]))
	})
	return sorted
}

// maxDue stands in for a missing due time so undated assignments sort last.
var maxDue = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func sortKey(a canvas.Assignment) time.Time {
	if a.DueAt == nil {
		return maxDue
	}
	return *a.DueAt
}

// BuildPlan computes the reminder schedule for a filtered batch of localized
// assignments.
//
// Dated assignments get exactly one reminder, one calendar day before the
// normalized due time at 08:00 local. Undated assignments get a fixed series
// of reminders spaced from the earliest normalized due time in the whole
// batch; with no dated assignment anywhere in the batch there is no basis for
// scheduling and they produce nothing.
func BuildPlan(assignments []canvas.Assignment, norm *Normalizer) Plan {
	sorted := SortByDue(assignments)
	earliest, hasEarliest := earliestDue(sorted, norm)

	var entries []Entry
	for _, a := range sorted {
		title := TaskTitle(a.CourseName, a.Name)

		if a.DueAt != nil {
			due := norm.NormalizeDueTime(*a.DueAt)
			entries = append(entries, Entry{
				Title: title,
				Due:   atHour(due.AddDate(0, 0, -leadDays), reminderHour),
				Notes: "Due: " + due.Format(dueNotesLayout),
			})
			continue
		}

		if !hasEarliest {
			continue
		}
		for i := 0; i < seriesLength; i++ {
			entries = append(entries, Entry{
				Title:    fmt.Sprintf("%s — Reminder %d", title, i+1),
				Due:      atHour(earliest.AddDate(0, 0, seriesSpacingDays*i), reminderHour),
				Notes:    periodicNotes,
				Periodic: true,
			})
		}
	}
	return Plan{Entries: entries}
}

// earliestDue returns the minimum normalized due time across all dated
// assignments in the batch, computed once globally.
func earliestDue(assignments []canvas.Assignment, norm *Normalizer) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, a := range assignments {
		if a.DueAt == nil {
			continue
		}
		due := norm.NormalizeDueTime(*a.DueAt)
		if !found || due.Before(earliest) {
			earliest = due
			found = true
		}
	}
	return earliest, found
}

// atHour forces the time-of-day to the given hour on t's civil date and zone.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
