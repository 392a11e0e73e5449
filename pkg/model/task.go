package model

import "sort"

// Keys of RawTask that the pipeline reads or fills in.
const (
	KeyID        = "id"
	KeyTitle     = "title"
	KeyDueDate   = "due_date"
	KeyListID    = "list_id"
	KeyListTitle = "list_title"
	KeySource    = "source" // "google", "taskwarrior" or "orgmode"
)

// DateLayout is the date-only format every source normalises due dates to.
const DateLayout = "2006-01-02"

// RawTask is a task record as delivered by a source. Only a handful of keys
// are interpreted; everything else is carried through to the checkpoint.
type RawTask map[string]any

// TaskGroup maps a list title to the tasks of that list, in source order.
type TaskGroup map[string][]RawTask

func (t RawTask) str(key string) string {
	s, _ := t[key].(string)
	return s
}

// ID returns the source's task id, or "" when there is none.
func (t RawTask) ID() string { return t.str(KeyID) }

// Title returns the raw title, annotation included.
func (t RawTask) Title() string { return t.str(KeyTitle) }

// ListTitle returns the title of the list the task came from.
func (t RawTask) ListTitle() string { return t.str(KeyListTitle) }

// Key identifies a task across runs: its id when the source provides one,
// otherwise its title.
func (t RawTask) Key() string {
	if id := t.ID(); id != "" {
		return id
	}
	return t.Title()
}

// Count returns the number of tasks across all lists.
func (g TaskGroup) Count() int {
	n := 0
	for _, tasks := range g {
		n += len(tasks)
	}
	return n
}

// Merge appends the lists of other into g, creating lists as needed.
func (g TaskGroup) Merge(other TaskGroup) {
	for title, tasks := range other {
		g[title] = append(g[title], tasks...)
	}
}

// Titles returns the list titles of g in sorted order.
func (g TaskGroup) Titles() []string {
	titles := make([]string, 0, len(g))
	for title := range g {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}
