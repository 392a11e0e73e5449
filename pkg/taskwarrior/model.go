package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
)

// DefaultList is the list title for tasks without a project.
const DefaultList = "Inbox"

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

type Task struct {
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Due         *CustomTime `json:"due,omitempty"`
	Status      string      `json:"status"`
	Project     string      `json:"project,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Urgency     float64     `json:"urgency,omitempty"`
}

// ListTitle is the list a task is reported under: its project, or Inbox.
func (t Task) ListTitle() string {
	if t.Project == "" {
		return DefaultList
	}
	return t.Project
}

// RawTask converts t for the daily plan. Taskwarrior stores due times in
// UTC; the due date is the calendar day of that instant in loc.
func (t Task) RawTask(loc *time.Location) model.RawTask {
	raw := model.RawTask{
		model.KeyID:        t.UUID,
		model.KeyTitle:     t.Description,
		model.KeyListID:    t.Project,
		model.KeyListTitle: t.ListTitle(),
		"status":           t.Status,
	}
	if t.Due != nil && !t.Due.IsZero() {
		raw[model.KeyDueDate] = t.Due.In(loc).Format(model.DateLayout)
	}
	if len(t.Tags) > 0 {
		raw["tags"] = t.Tags
	}
	return raw
}
