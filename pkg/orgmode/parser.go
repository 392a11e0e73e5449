package orgmode

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/harrisonrobin/morningtasks/pkg/config"
	"github.com/harrisonrobin/morningtasks/pkg/model"
)

var (
	headingRegex  = regexp.MustCompile(`^\*+\s+(?:(TODO|DONE)\s+)?(?:\[#([A-Z])\]\s*)?(.*?)(?:\s+(:(?:[\w@]+:)+))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
	idRegex       = regexp.MustCompile(`:ID:\s+([a-fA-F0-9-]+)`)
)

// Source reads TODO headings from Org-mode files. Each file is one list,
// titled after the file name.
type Source struct {
	files []string
}

func NewSource(files []string) *Source {
	return &Source{files: files}
}

func (s *Source) Name() string {
	return config.SourceOrgmode
}

// Fetch parses every configured file.
func (s *Source) Fetch(ctx context.Context) (model.TaskGroup, error) {
	groups := make(model.TaskGroup)
	for _, path := range s.files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := config.ExpandPath(path)
		if err != nil {
			return nil, err
		}
		list := ListTitle(path)
		tasks, err := parseFile(path, list)
		if err != nil {
			return nil, err
		}
		groups[list] = append(groups[list], tasks...)
	}
	return groups, nil
}

// ListTitle is the list name for an Org file: its base name without extension.
func ListTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseFile(path, list string) ([]model.RawTask, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, list)
}

// Parse returns the open TODO headings of an Org document. A heading's
// DEADLINE becomes its due date; headings without an :ID: property get an
// id derived from the list and title so it is stable between runs.
func Parse(r io.Reader, list string) ([]model.RawTask, error) {
	scanner := bufio.NewScanner(r)
	var tasks []model.RawTask
	var current model.RawTask

	flush := func() {
		if current == nil {
			return
		}
		if current.ID() == "" {
			current[model.KeyID] = uuid.NewSHA1(uuid.NameSpaceURL, []byte(list+"\x00"+current.Title())).String()
		}
		tasks = append(tasks, current)
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if matches := headingRegex.FindStringSubmatch(line); matches != nil {
			flush()
			if matches[1] != "TODO" {
				continue
			}
			current = model.RawTask{
				model.KeyTitle:     matches[3],
				model.KeyListID:    list,
				model.KeyListTitle: list,
			}
			if matches[2] != "" {
				current["priority"] = matches[2]
			}
			if matches[4] != "" {
				current["tags"] = strings.Split(strings.Trim(matches[4], ":"), ":")
			}
			continue
		}
		if current == nil {
			continue
		}

		if matches := deadlineRegex.FindStringSubmatch(line); matches != nil {
			current[model.KeyDueDate] = matches[1]
		}
		if matches := idRegex.FindStringSubmatch(line); matches != nil {
			current[model.KeyID] = matches[1]
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
