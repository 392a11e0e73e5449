package taskwarrior

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

const exportJSON = `{"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333", "description": "15m Buy milk", "status": "pending", "due": "20230101T230000Z", "project": "Groceries", "tags": ["buy", "food"]}
{"uuid": "a1111111-c12e-42e5-9c9c-333333333333", "description": "2h - Write report", "status": "pending"}
{"uuid": "b2222222-c12e-42e5-9c9c-333333333333", "description": "Old thing", "status": "completed", "project": "Groceries"}
`

func TestFetch(t *testing.T) {
	var gotArgs []string
	client := NewClient([]string{"+work"})
	client.location = time.FixedZone("UTC+2", 2*60*60)
	client.run = func(ctx context.Context, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte(exportJSON), nil
	}

	groups, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if strings.Join(gotArgs, " ") != "status:pending +work export rc.json.array=off rc.hooks=0" {
		t.Errorf("Unexpected task arguments %v", gotArgs)
	}
	if len(groups["Groceries"]) != 1 {
		t.Fatalf("Expected completed task to be skipped, got %v", groups["Groceries"])
	}

	milk := groups["Groceries"][0]
	if milk.ID() != "f45a05b3-c12e-42e5-9c9c-333333333333" || milk.Title() != "15m Buy milk" {
		t.Errorf("Unexpected task %v", milk)
	}
	// 23:00 UTC is already the next day two hours east.
	if milk[model.KeyDueDate] != "2023-01-02" {
		t.Errorf("Expected due date 2023-01-02, got %v", milk[model.KeyDueDate])
	}

	inbox := groups[DefaultList]
	if len(inbox) != 1 || inbox[0].Title() != "2h - Write report" {
		t.Fatalf("Expected project-less task in Inbox, got %v", inbox)
	}
	if _, ok := inbox[0][model.KeyDueDate]; ok {
		t.Error("Expected no due date for a task without one")
	}
}

func TestParseTasks(t *testing.T) {
	input := `{"uuid": "1", "description": "Buy milk", "status": "pending", "due": "20230101T120000Z"}
{"uuid": "2", "description": "Sell milk", "status": "waiting"}`

	tasks, err := ParseTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
	expectedDue, _ := time.Parse(time.RFC3339, "2023-01-01T12:00:00Z")
	if !tasks[0].Due.Time.Equal(expectedDue) {
		t.Errorf("Expected Due %v, got %v", expectedDue, tasks[0].Due.Time)
	}
	if tasks[1].Status != WAITING {
		t.Errorf("Expected waiting status, got %s", tasks[1].Status)
	}
}
