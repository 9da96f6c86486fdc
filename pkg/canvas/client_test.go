package canvas

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchAssignments(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id": 2, "name": "MATH-221 - Calculus"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(
			`<%s/api/v1/courses?page=2>; rel="next", <%s/api/v1/courses>; rel="first"`,
			srv.URL, srv.URL))
		fmt.Fprint(w, `[{"id": 1, "name": "CS101 - Intro to Programming"}]`)
	})
	mux.HandleFunc("/api/v1/courses/1/assignments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "HW 1", "due_at": "2025-03-10T00:00:00Z"},
			{"name": "Extra credit", "due_at": null}
		]`)
	})
	mux.HandleFunc("/api/v1/courses/2/assignments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name": "Quiz 1", "due_at": "2025-03-12T06:59:00Z"}]`)
	})

	client := NewClient(srv.URL, "test-token")
	groups, err := client.FetchAssignments()
	if err != nil {
		t.Fatalf("FetchAssignments failed: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 course groups (pagination followed), got %d", len(groups))
	}

	cs101 := groups[0]
	if cs101.Course.Name != "CS101 - Intro to Programming" {
		t.Errorf("course name = %q", cs101.Course.Name)
	}
	if len(cs101.Assignments) != 2 {
		t.Fatalf("expected 2 assignments in CS101, got %d", len(cs101.Assignments))
	}

	hw := cs101.Assignments[0]
	if hw.CourseName != "CS101 - Intro to Programming" {
		t.Errorf("assignment should carry its course name, got %q", hw.CourseName)
	}
	wantDue := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if hw.DueAt == nil || !hw.DueAt.Equal(wantDue) {
		t.Errorf("HW 1 due = %v, want %v", hw.DueAt, wantDue)
	}

	if cs101.Assignments[1].DueAt != nil {
		t.Errorf("null due_at should yield nil, got %v", cs101.Assignments[1].DueAt)
	}
}

func TestFetchAssignmentsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	if _, err := client.FetchAssignments(); err == nil {
		t.Error("expected error on HTTP 500, got nil")
	}
}

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "next present",
			header: `<https://canvas.example.com/api/v1/courses?page=2>; rel="next", <https://canvas.example.com/api/v1/courses?page=1>; rel="first"`,
			want:   "https://canvas.example.com/api/v1/courses?page=2",
		},
		{
			name:   "last page",
			header: `<https://canvas.example.com/api/v1/courses?page=1>; rel="first", <https://canvas.example.com/api/v1/courses?page=1>; rel="last"`,
			want:   "",
		},
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextLink(tt.header); got != tt.want {
				t.Errorf("nextLink(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestParseDueAt(t *testing.T) {
	rfc := "2025-03-10T06:59:59Z"
	got, err := parseDueAt(&rfc)
	if err != nil {
		t.Fatalf("parseDueAt failed: %v", err)
	}
	want := time.Date(2025, 3, 10, 6, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDueAt(%q) = %v, want %v", rfc, got, want)
	}

	// No offset: treated as UTC.
	bare := "2025-03-10T06:59:59"
	got, err = parseDueAt(&bare)
	if err != nil {
		t.Fatalf("parseDueAt failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("parseDueAt(%q) = %v, want %v", bare, got, want)
	}

	if got, err := parseDueAt(nil); err != nil || got != nil {
		t.Errorf("parseDueAt(nil) = (%v, %v), want (nil, nil)", got, err)
	}
}
