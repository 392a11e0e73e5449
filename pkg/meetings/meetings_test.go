package meetings

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type fakeCalendar []Meeting

func (f fakeCalendar) Meetings(ctx context.Context, day time.Time) ([]Meeting, error) {
	return f, nil
}

type fakeTasks struct {
	titles []string
	dues   []time.Time
}

func (f *fakeTasks) InsertTask(ctx context.Context, listID, title string, due time.Time) (string, error) {
	f.titles = append(f.titles, title)
	f.dues = append(f.dues, due)
	return fmt.Sprintf("%s-%d", listID, len(f.titles)), nil
}

type mapIndex map[string]string

func (m mapIndex) Get(day, eventID string) string { return m[day+"/"+eventID] }
func (m mapIndex) Set(day, eventID, taskID string) { m[day+"/"+eventID] = taskID }

func TestRegister(t *testing.T) {
	day := time.Date(2023, 3, 15, 7, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return time.Date(2023, 3, 15, h, m, 0, 0, time.UTC) }
	cal := fakeCalendar{
		{EventID: "e1", Subject: "FW: [Eng] Design review", Start: at(9, 0), End: at(10, 30)},
		{EventID: "e2", Subject: "Standup", Start: at(10, 30), End: at(10, 40)},
		{EventID: "e3", Subject: "   ", Start: at(11, 0), End: at(12, 0)},
	}
	tasks := &fakeTasks{}
	idx := mapIndex{}
	r := &Registrar{Calendar: cal, Tasks: tasks, Index: idx, ListID: "meetings"}

	results, err := r.Register(context.Background(), day)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %+v", results)
	}
	want := []string{"1.5h - Meeting: Design review", "15m - Meeting: Standup"}
	for i, title := range want {
		if tasks.titles[i] != title {
			t.Errorf("Expected title %q, got %q", title, tasks.titles[i])
		}
		if !tasks.dues[i].Equal(day) {
			t.Errorf("Expected task due %v, got %v", day, tasks.dues[i])
		}
	}
	if idx.Get("2023-03-15", "e1") != "meetings-1" {
		t.Errorf("Expected e1 indexed, got %v", idx)
	}

	// A second run creates nothing new.
	again, err := r.Register(context.Background(), day)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks.titles) != 2 {
		t.Errorf("Expected no new tasks, got %v", tasks.titles)
	}
	for _, res := range again {
		if !res.Skipped {
			t.Errorf("Expected %s to be skipped", res.Meeting.EventID)
		}
	}
}

func TestRegisterDryRun(t *testing.T) {
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	cal := fakeCalendar{{EventID: "e1", Subject: "1:1", Start: day.Add(9 * time.Hour), End: day.Add(9*time.Hour + 30*time.Minute)}}
	tasks := &fakeTasks{}
	r := &Registrar{Calendar: cal, Tasks: tasks, Index: mapIndex{}, DryRun: true}

	results, err := r.Register(context.Background(), day)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks.titles) != 0 {
		t.Errorf("Dry run must not create tasks, got %v", tasks.titles)
	}
	if len(results) != 1 || results[0].Title != "30m - Meeting: 1:1" {
		t.Errorf("Unexpected results %+v", results)
	}
}
