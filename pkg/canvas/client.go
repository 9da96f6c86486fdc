package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a Canvas LMS REST API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
	}
}

type rawAssignment struct {
	Name  string  `json:"name"`
	DueAt *string `json:"due_at"`
}

// GetCourses fetches all active courses, following pagination.
func (c *Client) GetCourses() ([]Course, error) {
	var courses []Course
	url := c.baseURL + "/api/v1/courses?enrollment_state=active&per_page=100"
	for url != "" {
		var page []Course
		next, err := c.getJSON(url, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		courses = append(courses, page...)
		url = next
	}
	return courses, nil
}

// getAssignments fetches all assignments (including external/LTI) for a
// course, following pagination.
func (c *Client) getAssignments(courseID int64) ([]rawAssignment, error) {
	var assignments []rawAssignment
	url := fmt.Sprintf(
		"%s/api/v1/courses/%d/assignments?per_page=100&include[]=submission_types&include[]=all_dates",
		c.baseURL, courseID)
	for url != "" {
		var page []rawAssignment
		next, err := c.getJSON(url, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to list assignments for course %d: %w", courseID, err)
		}
		assignments = append(assignments, page...)
		url = next
	}
	return assignments, nil
}

// FetchAssignments fetches every assignment across all active courses, grouped
// per course for the recency filter.
func (c *Client) FetchAssignments() ([]CourseAssignments, error) {
	courses, err := c.GetCourses()
	if err != nil {
		return nil, err
	}

	var groups []CourseAssignments
	for _, course := range courses {
		raws, err := c.getAssignments(course.ID)
		if err != nil {
			return nil, err
		}

		group := CourseAssignments{Course: course}
		for _, raw := range raws {
			due, err := parseDueAt(raw.DueAt)
			if err != nil {
				return nil, fmt.Errorf("assignment %q in course %q: %w", raw.Name, course.Name, err)
			}
			group.Assignments = append(group.Assignments, Assignment{
				Name:       raw.Name,
				CourseName: course.Name,
				DueAt:      due,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// getJSON performs an authenticated GET, decodes the response body into v, and
// returns the rel="next" pagination URL (empty when on the last page).
func (c *Client) getJSON(url string, v interface{}) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("canvas API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return "", fmt.Errorf("failed to decode canvas response: %w", err)
	}
	return nextLink(resp.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" URL from an RFC 5988 Link header, as Canvas
// emits for paginated endpoints.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.TrimSpace(section[1]) != `rel="next"` {
			continue
		}
		url := strings.TrimSpace(section[0])
		return strings.Trim(url, "<>")
	}
	return ""
}

// parseDueAt parses the Canvas due_at field. A missing or null value means no
// due date. Timestamps without an offset are treated as UTC.
func parseDueAt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		// Some Canvas instances omit the offset entirely.
		t, err = time.Parse("2006-01-02T15:04:05", *s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse due_at %q: %w", *s, err)
		}
	}
	return &t, nil
}
