package orgmode

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrisonrobin/morningtasks/pkg/model"
)

const sample = `#+TITLE: Work
* Projects
** TODO [#A] 2h - Write report :office:writing:
   DEADLINE: <2023-03-15 Wed 17:00>
   :PROPERTIES:
   :ID:       0f3c2a1e-1111-2222-3333-444455556666
   :END:
** DONE 30m Send invoice
   DEADLINE: <2023-03-10 Fri>
** TODO ! Salary review
   SCHEDULED: <2023-03-14 Tue>
* TODO Someday idea
`

func TestParse(t *testing.T) {
	tasks, err := Parse(strings.NewReader(sample), "work")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 open tasks, got %d: %v", len(tasks), tasks)
	}

	report := tasks[0]
	if report.Title() != "2h - Write report" {
		t.Errorf("Unexpected title %q", report.Title())
	}
	if report[model.KeyDueDate] != "2023-03-15" {
		t.Errorf("Expected due date 2023-03-15, got %v", report[model.KeyDueDate])
	}
	if report.ID() != "0f3c2a1e-1111-2222-3333-444455556666" {
		t.Errorf("Unexpected id %q", report.ID())
	}
	if report["priority"] != "A" {
		t.Errorf("Expected priority A, got %v", report["priority"])
	}
	tags, _ := report["tags"].([]string)
	if strings.Join(tags, ",") != "office,writing" {
		t.Errorf("Unexpected tags %v", report["tags"])
	}

	review := tasks[1]
	if review.Title() != "! Salary review" {
		t.Errorf("Unexpected title %q", review.Title())
	}
	if _, ok := review[model.KeyDueDate]; ok {
		t.Error("SCHEDULED must not be read as a due date")
	}
	if review.ID() == "" {
		t.Error("Expected a generated id")
	}

	again, err := Parse(strings.NewReader(sample), "work")
	if err != nil {
		t.Fatal(err)
	}
	if again[1].ID() != review.ID() {
		t.Error("Expected generated ids to be stable")
	}
	if tasks[2].ListTitle() != "work" {
		t.Errorf("Unexpected list title %q", tasks[2].ListTitle())
	}
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Office.org")
	if err := os.WriteFile(path, []byte(sample), 0600); err != nil {
		t.Fatal(err)
	}

	groups, err := NewSource([]string{path}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(groups["Office"]) != 3 {
		t.Errorf("Expected 3 tasks in Office, got %v", groups)
	}

	if _, err := NewSource([]string{filepath.Join(dir, "missing.org")}).Fetch(context.Background()); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
