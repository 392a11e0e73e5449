package google

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/api/tasks/v1"

	"github.com/harrisonrobin/morningtasks/pkg/config"
	"github.com/harrisonrobin/morningtasks/pkg/model"
)

const (
	pageSize       = 100
	defaultWorkers = 4
)

// TasksClient reads and writes Google Tasks. It implements source.Source.
type TasksClient struct {
	srv      *tasks.Service
	limiter  *rate.Limiter
	workers  int
	progress *progressbar.ProgressBar
}

// NewTasksClient returns a client issuing at most requestsPerSecond calls.
func NewTasksClient(srv *tasks.Service, requestsPerSecond float64) *TasksClient {
	return &TasksClient{
		srv:     srv,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		workers: defaultWorkers,
	}
}

// WithProgress reports one step per fetched list on bar.
func (c *TasksClient) WithProgress(bar *progressbar.ProgressBar) *TasksClient {
	c.progress = bar
	return c
}

func (c *TasksClient) Name() string {
	return config.SourceGoogle
}

// TaskLists returns all of the user's task lists.
func (c *TasksClient) TaskLists(ctx context.Context) ([]*tasks.TaskList, error) {
	var lists []*tasks.TaskList
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, err := c.srv.Tasklists.List().MaxResults(pageSize).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve task lists: %w", err)
		}
		lists = append(lists, page.Items...)
		if page.NextPageToken == "" {
			return lists, nil
		}
		pageToken = page.NextPageToken
	}
}

// ListTasks returns the open tasks of one list.
func (c *TasksClient) ListTasks(ctx context.Context, listID string) ([]*tasks.Task, error) {
	var items []*tasks.Task
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, err := c.srv.Tasks.List(listID).
			ShowCompleted(false).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve tasks of list %s: %w", listID, err)
		}
		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			return items, nil
		}
		pageToken = page.NextPageToken
	}
}

// Fetch downloads every list concurrently and groups the open tasks by list
// title.
func (c *TasksClient) Fetch(ctx context.Context) (model.TaskGroup, error) {
	lists, err := c.TaskLists(ctx)
	if err != nil {
		return nil, err
	}
	if c.progress != nil {
		c.progress.ChangeMax(len(lists))
	}

	results := make([][]model.RawTask, len(lists))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, list := range lists {
		g.Go(func() error {
			items, err := c.ListTasks(ctx, list.Id)
			if err != nil {
				return err
			}
			raw := make([]model.RawTask, 0, len(items))
			for _, item := range items {
				raw = append(raw, RawTask(list, item))
			}
			results[i] = raw
			if c.progress != nil {
				_ = c.progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	groups := make(model.TaskGroup)
	for i, list := range lists {
		groups[list.Title] = append(groups[list.Title], results[i]...)
	}
	return groups, nil
}

// RawTask converts an API task. Google Tasks stores due dates as midnight
// UTC timestamps; only the date part is meaningful. A due value that is not
// RFC 3339 is passed through untouched so the due filter reports it.
func RawTask(list *tasks.TaskList, t *tasks.Task) model.RawTask {
	raw := model.RawTask{
		model.KeyID:        t.Id,
		model.KeyTitle:     t.Title,
		model.KeyListID:    list.Id,
		model.KeyListTitle: list.Title,
		"status":           t.Status,
	}
	if t.Due != "" {
		if due, err := time.Parse(time.RFC3339, t.Due); err == nil {
			raw[model.KeyDueDate] = due.UTC().Format(model.DateLayout)
		} else {
			raw[model.KeyDueDate] = t.Due
		}
	}
	if t.Notes != "" {
		raw["notes"] = t.Notes
	}
	if t.Parent != "" {
		raw["parent"] = t.Parent
	}
	return raw
}

// FindList returns the id of the task list titled title.
func (c *TasksClient) FindList(ctx context.Context, title string) (string, error) {
	lists, err := c.TaskLists(ctx)
	if err != nil {
		return "", err
	}
	for _, list := range lists {
		if list.Title == title {
			return list.Id, nil
		}
	}
	return "", fmt.Errorf("task list '%s' not found", title)
}

// InsertTask creates a task due on the calendar date of due and returns its id.
func (c *TasksClient) InsertTask(ctx context.Context, listID, title string, due time.Time) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	task := &tasks.Task{
		Title: title,
		Due:   due.Format(model.DateLayout) + "T00:00:00.000Z",
	}
	created, err := c.srv.Tasks.Insert(listID, task).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create task %q: %w", title, err)
	}
	return created.Id, nil
}
