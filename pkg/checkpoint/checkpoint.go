// Package checkpoint stores what was set out to be done in the morning so it
// can be compared with what is still open at the end of the day.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

const (
	fileSuffix     = "_tasks.checkpoint"
	dailyLogDir    = "daily-tasks"
	dailyLogSuffix = "_tasks.md"
)

// Snapshot is the body of a checkpoint file.
type Snapshot struct {
	Date    string          `json:"date"`
	RunID   string          `json:"run_id"`
	Created time.Time       `json:"created"`
	Lists   model.TaskGroup `json:"lists"`
}

// NewSnapshot captures groups as the plan for date.
func NewSnapshot(date time.Time, groups model.TaskGroup) *Snapshot {
	return &Snapshot{
		Date:    date.Format(model.DateLayout),
		RunID:   uuid.NewString(),
		Created: time.Now(),
		Lists:   groups,
	}
}

// Path returns the checkpoint file for date under dir.
func Path(dir string, date time.Time) string {
	return filepath.Join(dir, date.Format(model.DateLayout)+fileSuffix)
}

// DailyLogPath returns the Markdown log file for date under dir.
func DailyLogPath(dir string, date time.Time) string {
	return filepath.Join(dir, dailyLogDir, date.Format(model.DateLayout)+dailyLogSuffix)
}

// Write stores s under dir, replacing any earlier checkpoint for the same day.
func Write(dir string, s *Snapshot) (string, error) {
	date, err := time.Parse(model.DateLayout, s.Date)
	if err != nil {
		return "", fmt.Errorf("invalid snapshot date: %w", err)
	}
	path := Path(dir, date)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return "", fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	return path, nil
}

// WriteDailyLog stores the rendered Markdown log for date under dir.
func WriteDailyLog(dir string, date time.Time, content string) (string, error) {
	path := DailyLogPath(dir, date)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the checkpoint for date from dir.
func Load(dir string, date time.Time) (*Snapshot, error) {
	f, err := os.Open(Path(dir, date))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Snapshot
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	if s.Lists == nil {
		s.Lists = make(model.TaskGroup)
	}
	return &s, nil
}

// ListReview splits the planned tasks of one list.
type ListReview struct {
	Title     string
	Done      []model.RawTask
	Remaining []model.RawTask
}

// Review compares the morning plan with the tasks still open now. A planned
// task counts as done when no open task carries its key any more.
func Review(s *Snapshot, open model.TaskGroup) []ListReview {
	stillOpen := make(map[string]bool)
	for _, tasks := range open {
		for _, task := range tasks {
			stillOpen[task.Key()] = true
		}
	}

	reviews := make([]ListReview, 0, len(s.Lists))
	for _, title := range s.Lists.Titles() {
		r := ListReview{Title: title}
		for _, task := range s.Lists[title] {
			if stillOpen[task.Key()] {
				r.Remaining = append(r.Remaining, task)
			} else {
				r.Done = append(r.Done, task)
			}
		}
		reviews = append(reviews, r)
	}
	return reviews
}
