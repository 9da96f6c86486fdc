package canvas

import "time"

// Course is one active enrollment from the Canvas courses endpoint.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Assignment is a single gradable (or informational) item belonging to a course.
// DueAt is nil for assignments without a due date; the timestamp is whatever
// zone the API reported (UTC) until the scheduler localizes it.
type Assignment struct {
	Name       string
	CourseName string
	DueAt      *time.Time
}

// CourseAssignments groups one course's assignments so the recency filter can
// retain or drop the course as a whole.
type CourseAssignments struct {
	Course      Course
	Assignments []Assignment
}
