// Package meetings turns today's calendar meetings into tasks whose titles
// carry the meeting length as a cost estimate, e.g. "1.5h - Meeting: Design".
package meetings

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/model"
	"github.com/harrisonrobin/morningtasks/pkg/util"
)

// Meeting is a timed calendar event.
type Meeting struct {
	EventID string
	Subject string
	Start   time.Time
	End     time.Time
}

// Calendar lists the meetings of a day.
type Calendar interface {
	Meetings(ctx context.Context, day time.Time) ([]Meeting, error)
}

// TaskInserter creates a task due on a given day and returns its id.
type TaskInserter interface {
	InsertTask(ctx context.Context, listID, title string, due time.Time) (string, error)
}

// Index records which task was created for which event on which day.
type Index interface {
	Get(day, eventID string) string
	Set(day, eventID, taskID string)
}

// Result describes one meeting handled by Register.
type Result struct {
	Meeting Meeting
	Title   string
	TaskID  string
	Skipped bool
}

// Registrar creates one task per meeting.
type Registrar struct {
	Calendar Calendar
	Tasks    TaskInserter
	Index    Index
	ListID   string
	DryRun   bool
}

// Register creates tasks for the meetings of day that have no task yet.
// Meetings whose subject cannot be turned into a title are logged and skipped.
func (r *Registrar) Register(ctx context.Context, day time.Time) ([]Result, error) {
	meetings, err := r.Calendar.Meetings(ctx, day)
	if err != nil {
		return nil, err
	}
	dayKey := day.Format(model.DateLayout)

	var results []Result
	for _, m := range meetings {
		title, err := util.MeetingTitle(m.Subject, m.Start, m.End)
		if err != nil {
			log.Printf("Warning: skipping meeting %s: %v", m.EventID, err)
			continue
		}
		res := Result{Meeting: m, Title: title}

		if r.Index != nil {
			if taskID := r.Index.Get(dayKey, m.EventID); taskID != "" {
				res.TaskID = taskID
				res.Skipped = true
				results = append(results, res)
				continue
			}
		}
		if r.DryRun {
			results = append(results, res)
			continue
		}

		taskID, err := r.Tasks.InsertTask(ctx, r.ListID, title, day)
		if err != nil {
			return results, fmt.Errorf("registering meeting %s: %w", m.EventID, err)
		}
		res.TaskID = taskID
		if r.Index != nil {
			r.Index.Set(dayKey, m.EventID, taskID)
		}
		results = append(results, res)
	}
	return results, nil
}
