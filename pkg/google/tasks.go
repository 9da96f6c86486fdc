package google

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/canvastasks/pkg/auth"
	"google.golang.org/api/tasks/v1"
)

// defaultTasklist is the Google Tasks alias for the user's default list.
const defaultTasklist = "@default"

// TasksClient is a thin wrapper over one Google Tasks task list.
type TasksClient struct {
	srv        *tasks.Service
	tasklistID string
}

// NewClient builds an authenticated client bound to the task list with the
// given title. An empty name selects the user's default list.
func NewClient(ctx context.Context, listName string) (*TasksClient, error) {
	srv, err := auth.GetTasksService(ctx)
	if err != nil {
		return nil, err
	}

	tasklistID := defaultTasklist
	if listName != "" {
		lists, err := srv.Tasklists.List().Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve task lists: %w", err)
		}
		tasklistID = ""
		for _, item := range lists.Items {
			if item.Title == listName {
				tasklistID = item.Id
				break
			}
		}
		if tasklistID == "" {
			return nil, fmt.Errorf("task list '%s' not found", listName)
		}
	}

	return NewTasksClient(srv, tasklistID), nil
}

// NewTasksClient wraps an existing Tasks service and task list ID.
func NewTasksClient(srv *tasks.Service, tasklistID string) *TasksClient {
	return &TasksClient{srv: srv, tasklistID: tasklistID}
}

// ListTasks fetches the complete task list, following pagination.
func (c *TasksClient) ListTasks() ([]*tasks.Task, error) {
	var all []*tasks.Task
	pageToken := ""
	for {
		call := c.srv.Tasks.List(c.tasklistID).MaxResults(100).ShowHidden(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve tasks: %w", err)
		}
		all = append(all, page.Items...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// InsertTask creates a new task on the list.
func (c *TasksClient) InsertTask(t *tasks.Task) (*tasks.Task, error) {
	return c.srv.Tasks.Insert(c.tasklistID, t).Do()
}

// PatchTask performs a partial update on a task.
func (c *TasksClient) PatchTask(id string, t *tasks.Task) (*tasks.Task, error) {
	return c.srv.Tasks.Patch(c.tasklistID, id, t).Do()
}

// DeleteTask deletes a task from the list.
func (c *TasksClient) DeleteTask(id string) error {
	return c.srv.Tasks.Delete(c.tasklistID, id).Do()
}
