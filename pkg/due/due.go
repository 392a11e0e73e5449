// Package due decides which tasks are due today or earlier.
//
// A task without a due date is never due. A due date that cannot be parsed
// is an error.
package due

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

// MalformedDueDateError reports a due date that is not in model.DateLayout.
type MalformedDueDateError struct {
	Title string
	Value any
	Err   error
}

func (e *MalformedDueDateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task %q has malformed due date %v: %v", e.Title, e.Value, e.Err)
	}
	return fmt.Sprintf("task %q has malformed due date %v", e.Title, e.Value)
}

func (e *MalformedDueDateError) Unwrap() error {
	return e.Err
}

// IsDue reports whether task is due on or before the calendar date of today.
// Overdue tasks stay due until they are completed or rescheduled.
func IsDue(task model.RawTask, today time.Time) (bool, error) {
	raw, ok := task[model.KeyDueDate]
	if !ok || raw == nil {
		return false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return false, &MalformedDueDateError{Title: task.Title(), Value: raw}
	}

	loc := today.Location()
	dueDate, err := time.ParseInLocation(model.DateLayout, s, loc)
	if err != nil {
		return false, &MalformedDueDateError{Title: task.Title(), Value: s, Err: err}
	}
	y, m, d := today.Date()
	return !dueDate.After(time.Date(y, m, d, 0, 0, 0, 0, loc)), nil
}

// Filter returns the tasks that are due, in their original order.
func Filter(tasks []model.RawTask, today time.Time) ([]model.RawTask, error) {
	var dueTasks []model.RawTask
	for _, task := range tasks {
		ok, err := IsDue(task, today)
		if err != nil {
			return nil, err
		}
		if ok {
			dueTasks = append(dueTasks, task)
		}
	}
	return dueTasks, nil
}
