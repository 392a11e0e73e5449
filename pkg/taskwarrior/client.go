package taskwarrior

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/config"
	"github.com/harrisonrobin/morningtasks/pkg/model"
)

// Client runs the task binary. It implements source.Source.
type Client struct {
	filter   []string
	location *time.Location
	run      func(ctx context.Context, args ...string) ([]byte, error)
}

// NewClient returns a client exporting pending tasks matching filter.
func NewClient(filter []string) *Client {
	return &Client{filter: filter, location: time.Local, run: runTask}
}

func runTask(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "task", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}
	return output, nil
}

func (c *Client) Name() string {
	return config.SourceTaskwarrior
}

// GetTasks exports pending tasks, one JSON object per line. Hooks are
// disabled so exporting does not trigger other integrations.
func (c *Client) GetTasks(ctx context.Context) ([]Task, error) {
	args := append([]string{"status:" + PENDING}, c.filter...)
	args = append(args, "export", "rc.json.array=off", "rc.hooks=0")
	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseTasks(bytes.NewReader(output))
}

// Fetch groups the pending tasks by project.
func (c *Client) Fetch(ctx context.Context) (model.TaskGroup, error) {
	tasks, err := c.GetTasks(ctx)
	if err != nil {
		return nil, err
	}
	return Group(tasks, c.location), nil
}

// Group converts tasks and groups them by list title, skipping anything that
// is not pending.
func Group(tasks []Task, loc *time.Location) model.TaskGroup {
	groups := make(model.TaskGroup)
	for _, t := range tasks {
		if t.Status != PENDING {
			continue
		}
		groups[t.ListTitle()] = append(groups[t.ListTitle()], t.RawTask(loc))
	}
	return groups
}

// ParseTasks parses a stream of task JSON objects, such as the lines a
// Taskwarrior hook receives on stdin.
func ParseTasks(r io.Reader) ([]Task, error) {
	var tasks []Task
	decoder := json.NewDecoder(r)
	for {
		var task Task
		if err := decoder.Decode(&task); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
