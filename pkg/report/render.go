package report

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
	"github.com/harrisonrobin/morningtasks/pkg/model"
	"github.com/harrisonrobin/morningtasks/pkg/util"
)

const (
	emailSubjectDateLayout = "2006/01/02"
	emailSubjectFormat     = "Today's Goals: %s"
)

// FrontMatter is the YAML header of a daily log.
type FrontMatter struct {
	Date             string   `yaml:"date"`
	Tasks            int      `yaml:"tasks"`
	Estimated        string   `yaml:"estimated"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	Unestimated      int      `yaml:"unestimated"`
	Lists            []string `yaml:"lists"`
}

// DailyLog renders every due task, sensitive ones included, as Markdown:
// one "## <list>" section per list with a bullet per task.
func DailyLog(groups model.TaskGroup, date time.Time, parser *annotation.Parser) (string, error) {
	titles := groups.Titles()
	summary := Summarize(Flatten(groups), parser)
	fm := FrontMatter{
		Date:             date.Format(model.DateLayout),
		Tasks:            summary.Tasks,
		Estimated:        util.FormatMinutes(int64(summary.CostMinutes)),
		EstimatedMinutes: summary.CostMinutes,
		Unestimated:      summary.Unestimated,
		Lists:            titles,
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	sections := make([]string, 0, len(titles))
	for _, title := range titles {
		var b strings.Builder
		b.WriteString("## " + title)
		for _, task := range groups[title] {
			b.WriteString("\n* " + task.Title())
		}
		sections = append(sections, b.String())
	}

	return "---\n" + string(header) + "---\n\n" + strings.Join(sections, "\n\n") + "\n", nil
}

// ReadFrontMatter reads the YAML header back from a daily log.
func ReadFrontMatter(r io.Reader) (FrontMatter, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return FrontMatter{}, err
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, "---") {
		return FrontMatter{}, fmt.Errorf("no front matter found")
	}
	rest := content[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return FrontMatter{}, fmt.Errorf("no closing front matter delimiter")
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(rest[:idx]), &fm); err != nil {
		return FrontMatter{}, fmt.Errorf("parse yaml: %w", err)
	}
	return fm, nil
}

// EmailBody renders tasks as a bulleted list below comment.
func EmailBody(tasks []model.RawTask, comment string) string {
	lines := make([]string, len(tasks))
	for i, task := range tasks {
		lines[i] = "• " + task.Title()
	}
	return comment + "\n" + strings.Join(lines, "\n")
}

// EmailSubject is the subject line of the daily goals email.
func EmailSubject(date time.Time) string {
	return fmt.Sprintf(emailSubjectFormat, date.Format(emailSubjectDateLayout))
}

// MailtoURL builds a mailto link that opens a draft in the default mail client.
func MailtoURL(addressee, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", addressee, mailEscape(subject), mailEscape(body))
}

// mailEscape percent-encodes s for a mailto query; mail clients do not treat
// '+' as a space.
func mailEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
