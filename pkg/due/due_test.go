package due

import (
	"errors"
	"testing"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

func task(dueDate any) model.RawTask {
	t := model.RawTask{model.KeyTitle: "Test Task"}
	if dueDate != nil {
		t[model.KeyDueDate] = dueDate
	}
	return t
}

func TestIsDue(t *testing.T) {
	today := time.Date(2023, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		task model.RawTask
		want bool
	}{
		{"no due date", task(nil), false},
		{"explicit nil", model.RawTask{model.KeyDueDate: nil}, false},
		{"due today", task("2023-03-15"), true},
		{"overdue", task("2023-03-01"), true},
		{"long overdue", task("2019-12-31"), true},
		{"due tomorrow", task("2023-03-16"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsDue(tt.task, today)
			if err != nil {
				t.Fatalf("IsDue failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsDueBoundary(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	for _, s := range []string{"2020-02-29", "2023-01-01", "2023-12-31"} {
		d, err := time.ParseInLocation(model.DateLayout, s, loc)
		if err != nil {
			t.Fatal(err)
		}
		if ok, err := IsDue(task(s), d.Add(23*time.Hour)); err != nil || !ok {
			t.Errorf("%s: expected due on the day itself, got %v (%v)", s, ok, err)
		}
		if ok, err := IsDue(task(s), d.AddDate(0, 0, -1)); err != nil || ok {
			t.Errorf("%s: expected not due the day before, got %v (%v)", s, ok, err)
		}
	}
}

func TestIsDueMalformed(t *testing.T) {
	today := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, value := range []any{"", "15/03/2023", "2023-03-15T00:00:00Z", 20230315} {
		_, err := IsDue(task(value), today)
		var mdErr *MalformedDueDateError
		if !errors.As(err, &mdErr) {
			t.Errorf("%v: expected MalformedDueDateError, got %v", value, err)
		}
	}
}

func TestFilter(t *testing.T) {
	today := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	tasks := []model.RawTask{
		{model.KeyTitle: "a", model.KeyDueDate: "2023-03-14"},
		{model.KeyTitle: "b"},
		{model.KeyTitle: "c", model.KeyDueDate: "2023-03-20"},
		{model.KeyTitle: "d", model.KeyDueDate: "2023-03-15"},
	}
	got, err := Filter(tasks, today)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(got) != 2 || got[0].Title() != "a" || got[1].Title() != "d" {
		t.Errorf("Unexpected result: %v", got)
	}

	tasks = append(tasks, model.RawTask{model.KeyTitle: "e", model.KeyDueDate: "soon"})
	if _, err := Filter(tasks, today); err == nil {
		t.Error("Expected malformed due date to fail the whole pass")
	}
}
