package report

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
	"github.com/harrisonrobin/morningtasks/pkg/due"
	"github.com/harrisonrobin/morningtasks/pkg/model"
)

// PrefixGroup is the flattened set of tasks from every list whose title
// starts with Prefix.
type PrefixGroup struct {
	Prefix string
	Tasks  []model.RawTask
}

// GroupDueTasks keeps the due tasks of every list. Lists with nothing due
// are dropped entirely. A malformed due date anywhere fails the whole pass.
func GroupDueTasks(tasksByList model.TaskGroup, today time.Time) (model.TaskGroup, error) {
	groups := make(model.TaskGroup)
	for title, tasks := range tasksByList {
		dueTasks, err := due.Filter(tasks, today)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", title, err)
		}
		if len(dueTasks) > 0 {
			groups[title] = dueTasks
		}
	}
	return groups, nil
}

// PartitionByPrefix returns one PrefixGroup per prefix, in the given order.
// A list joins only the first prefix its title starts with, and lists are
// visited in sorted title order. Tasks carrying the sensitive flag are left
// out, as are titles the parser cannot classify.
func PartitionByPrefix(groups model.TaskGroup, prefixes []string, parser *annotation.Parser) ([]PrefixGroup, error) {
	partitions := make([]PrefixGroup, len(prefixes))
	for i, prefix := range prefixes {
		partitions[i] = PrefixGroup{Prefix: prefix}
	}

	for _, title := range groups.Titles() {
		idx := -1
		for i, prefix := range prefixes {
			if strings.HasPrefix(title, prefix) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		for _, task := range groups[title] {
			a, err := parser.Parse(task.Title())
			if errors.Is(err, annotation.ErrNoMatch) {
				log.Printf("Warning: skipping unclassifiable task %q in %q", task.Title(), title)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("list %q: %w", title, err)
			}
			if a.Has(annotation.Sensitive) {
				continue
			}
			partitions[idx].Tasks = append(partitions[idx].Tasks, task)
		}
	}
	return partitions, nil
}

// Summary totals the annotations of a set of tasks.
type Summary struct {
	Tasks       int
	CostMinutes int
	Unestimated int
	Sensitive   int
	Unparsed    int
}

// Summarize parses every task title and adds up the estimates.
func Summarize(tasks []model.RawTask, parser *annotation.Parser) Summary {
	var s Summary
	for _, task := range tasks {
		s.Tasks++
		a, err := parser.Parse(task.Title())
		if err != nil {
			s.Unparsed++
			continue
		}
		if a.CostMinutes == 0 {
			s.Unestimated++
		}
		if a.Has(annotation.Sensitive) {
			s.Sensitive++
		}
		if a.CostMinutes > math.MaxInt-s.CostMinutes {
			s.CostMinutes = math.MaxInt
		} else {
			s.CostMinutes += a.CostMinutes
		}
	}
	return s
}

// Flatten returns the tasks of groups in sorted list order.
func Flatten(groups model.TaskGroup) []model.RawTask {
	var tasks []model.RawTask
	for _, title := range groups.Titles() {
		tasks = append(tasks, groups[title]...)
	}
	return tasks
}
