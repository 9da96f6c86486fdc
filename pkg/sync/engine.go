package sync

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harrisonrobin/canvastasks/pkg/schedule"
	"google.golang.org/api/tasks/v1"
)

// Strategy selects how the engine reconciles the plan against the remote
// task list. Both observed behaviors are deliberate, mutually exclusive
// choices: recreate churns task identity every run but cannot drift, update
// preserves task IDs but relies on title matching and partial updates.
type Strategy string

const (
	// StrategyRecreate deletes every remote task whose title the plan owns,
	// then inserts all entries fresh.
	StrategyRecreate Strategy = "recreate"
	// StrategyUpdate patches tasks matched by title in place and inserts the
	// rest.
	StrategyUpdate Strategy = "update"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRecreate, StrategyUpdate:
		return Strategy(s), nil
	case "":
		return StrategyRecreate, nil
	}
	return "", fmt.Errorf("unknown sync strategy %q (want %q or %q)", s, StrategyRecreate, StrategyUpdate)
}

// TaskService is the slice of the Google Tasks surface the engine needs.
type TaskService interface {
	ListTasks() ([]*tasks.Task, error)
	InsertTask(t *tasks.Task) (*tasks.Task, error)
	PatchTask(id string, t *tasks.Task) (*tasks.Task, error)
	DeleteTask(id string) error
}

// Summary reports what a run did, bucketed the way the console report prints
// it. Updated is only populated by the update strategy.
type Summary struct {
	Created       []string
	Updated       []string
	NoDueCreated  []string
	FailedDeletes int
}

// Engine applies a reminder plan against the remote task list.
type Engine struct {
	svc      TaskService
	strategy Strategy
	logger   *log.Logger
}

func NewEngine(svc TaskService, strategy Strategy, logger *log.Logger) *Engine {
	return &Engine{svc: svc, strategy: strategy, logger: logger}
}

// Apply makes the remote task list match the plan for the titles involved.
// Listing and insertion errors are fatal to the run; individual deletion
// failures are logged and skipped, which may leave a stale duplicate behind.
func (e *Engine) Apply(plan schedule.Plan) (*Summary, error) {
	existing, err := e.svc.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to list remote tasks: %w", err)
	}

	if e.strategy == StrategyUpdate {
		return e.applyUpdate(plan, existing)
	}
	return e.applyRecreate(plan, existing)
}

func (e *Engine) applyRecreate(plan schedule.Plan, existing []*tasks.Task) (*Summary, error) {
	summary := &Summary{}
	owned := plan.Titles()

	for _, t := range existing {
		if !owned[t.Title] {
			continue
		}
		if err := e.svc.DeleteTask(t.Id); err != nil {
			e.logger.Warn("could not delete stale task", "title", t.Title, "err", err)
			summary.FailedDeletes++
		}
	}

	for _, entry := range plan.Entries {
		if _, err := e.svc.InsertTask(taskBody(entry)); err != nil {
			return nil, fmt.Errorf("failed to insert task %q: %w", entry.Title, err)
		}
		summary.recordCreated(entry)
	}
	return summary, nil
}

func (e *Engine) applyUpdate(plan schedule.Plan, existing []*tasks.Task) (*Summary, error) {
	summary := &Summary{}
	byTitle := make(map[string]*tasks.Task, len(existing))
	for _, t := range existing {
		byTitle[t.Title] = t
	}

	for _, entry := range plan.Entries {
		if current, ok := byTitle[entry.Title]; ok {
			if _, err := e.svc.PatchTask(current.Id, taskBody(entry)); err != nil {
				return nil, fmt.Errorf("failed to update task %q: %w", entry.Title, err)
			}
			summary.Updated = append(summary.Updated, entry.Title)
			continue
		}
		if _, err := e.svc.InsertTask(taskBody(entry)); err != nil {
			return nil, fmt.Errorf("failed to insert task %q: %w", entry.Title, err)
		}
		summary.recordCreated(entry)
	}
	return summary, nil
}

func (s *Summary) recordCreated(entry schedule.Entry) {
	if entry.Periodic {
		s.NoDueCreated = append(s.NoDueCreated, entry.Title)
	} else {
		s.Created = append(s.Created, entry.Title)
	}
}

func taskBody(entry schedule.Entry) *tasks.Task {
	return &tasks.Task{
		Title: entry.Title,
		Notes: entry.Notes,
		Due:   entry.Due.Format(time.RFC3339),
	}
}
