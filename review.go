package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
	"github.com/harrisonrobin/morningtasks/pkg/checkpoint"
	"github.com/harrisonrobin/morningtasks/pkg/model"
	"github.com/harrisonrobin/morningtasks/pkg/report"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Compare the morning plan with the tasks still open",
	Args:  cobra.NoArgs,
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
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
	dir, err := cfg.ResolvedDir()
	if err != nil {
		return err
	}

	snapshot, err := checkpoint.Load(dir, day)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no plan for %s, run generate first", day.Format(model.DateLayout))
	}
	if err != nil {
		return err
	}
	if f, err := os.Open(checkpoint.DailyLogPath(dir, day)); err == nil {
		fm, err := report.ReadFrontMatter(f)
		f.Close()
		if err != nil {
			log.Printf("Warning: could not read daily log front matter: %v", err)
		} else {
			debugf("daily log planned %d tasks, %d minutes estimated", fm.Tasks, fm.EstimatedMinutes)
		}
	}

	open, err := fetchLists(ctx, cfg)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("List", "Done", "Remaining", "Left")
	var done, remaining int
	for _, r := range checkpoint.Review(snapshot, open) {
		left := report.Summarize(r.Remaining, parser)
		_ = table.Append(r.Title, green.Sprint(len(r.Done)), remainingCell(len(r.Remaining)), minutes(left.CostMinutes))
		done += len(r.Done)
		remaining += len(r.Remaining)
	}
	_ = table.Render()

	bold.Printf("%d of %d planned tasks done\n", done, done+remaining)
	return nil
}

func remainingCell(n int) string {
	if n == 0 {
		return faint.Sprint(n)
	}
	return red.Sprint(n)
}
