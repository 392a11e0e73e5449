package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
	"github.com/harrisonrobin/morningtasks/pkg/checkpoint"
	"github.com/harrisonrobin/morningtasks/pkg/config"
	"github.com/harrisonrobin/morningtasks/pkg/google"
	"github.com/harrisonrobin/morningtasks/pkg/model"
	"github.com/harrisonrobin/morningtasks/pkg/orgmode"
	"github.com/harrisonrobin/morningtasks/pkg/report"
	"github.com/harrisonrobin/morningtasks/pkg/source"
	"github.com/harrisonrobin/morningtasks/pkg/taskwarrior"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write today's due tasks to the daily log and draft the office email",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var (
	noEmail      bool
	dryRun       bool
	emailComment string
)

func init() {
	generateCmd.Flags().BoolVar(&noEmail, "no-email", false, "do not open the email draft")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the daily log instead of writing files")
	generateCmd.Flags().StringVar(&emailComment, "comment", "", "comment placed above the task list in the email")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	day, err := planDay()
	if err != nil {
		return err
	}
	parser, err := annotation.New(cfg.AnnotationConfig())
	if err != nil {
		return err
	}

	lists, err := fetchLists(ctx, cfg)
	if err != nil {
		return err
	}
	groups, err := report.GroupDueTasks(lists, day)
	if err != nil {
		return fmt.Errorf("filtering due tasks: %w", err)
	}
	debugf("%d of %d tasks due in %d lists", groups.Count(), lists.Count(), len(groups))

	dailyLog, err := report.DailyLog(groups, day, parser)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Print(dailyLog)
		return nil
	}

	dir, err := cfg.ResolvedDir()
	if err != nil {
		return err
	}
	logPath, err := checkpoint.WriteDailyLog(dir, day, dailyLog)
	if err != nil {
		return fmt.Errorf("writing daily log: %w", err)
	}
	cpPath, err := checkpoint.Write(dir, checkpoint.NewSnapshot(day, groups))
	if err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}

	summary := report.Summarize(report.Flatten(groups), parser)
	bold.Printf("%d tasks due, %s estimated", summary.Tasks, minutes(summary.CostMinutes))
	if summary.Unestimated > 0 {
		yellow.Printf(" (%d without estimate)", summary.Unestimated)
	}
	fmt.Println()
	printPath(os.Stdout, "Daily log:", logPath)
	printPath(os.Stdout, "Checkpoint:", cpPath)

	if noEmail || cfg.Email == "" {
		return nil
	}
	return draftEmail(cfg, groups, day, parser)
}

// draftEmail opens a mail draft listing the non-sensitive tasks of lists under
// the configured email prefix.
func draftEmail(cfg *config.Config, groups model.TaskGroup, day time.Time, parser *annotation.Parser) error {
	parts, err := report.PartitionByPrefix(groups, []string{cfg.EmailPrefix}, parser)
	if err != nil {
		return err
	}
	body := report.EmailBody(parts[0].Tasks, emailComment)
	url := report.MailtoURL(cfg.Email, report.EmailSubject(day), body)
	debugf("opening email draft with %d tasks", len(parts[0].Tasks))
	if err := openBrowser(url); err != nil {
		return fmt.Errorf("opening email draft: %w", err)
	}
	return nil
}

// fetchLists collects the open tasks of every configured source.
func fetchLists(ctx context.Context, cfg *config.Config) (model.TaskGroup, error) {
	bar := newProgressBar("Fetching task lists")
	defer bar.Finish()

	var sources []source.Source
	for _, name := range cfg.Sources {
		switch name {
		case config.SourceGoogle:
			tasksSrv, _, err := google.NewServices(ctx)
			if err != nil {
				return nil, err
			}
			sources = append(sources, google.NewTasksClient(tasksSrv, cfg.RequestsPerSecond).WithProgress(bar))
		case config.SourceTaskwarrior:
			sources = append(sources, taskwarrior.NewClient(cfg.TaskwarriorFilter))
		case config.SourceOrgmode:
			sources = append(sources, orgmode.NewSource(cfg.OrgFiles))
		}
	}

	lists, err := source.Collect(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return lists, nil
}
