package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/morningtasks/pkg/config"
	"github.com/harrisonrobin/morningtasks/pkg/model"
)

var rootCmd = &cobra.Command{
	Use:   "morningtasks",
	Short: "Plan the day from your task lists",
	Long: `morningtasks collects the tasks due today or earlier from Google Tasks,
Taskwarrior and Org-mode files, logs them to a daily Markdown file and a
checkpoint, and drafts an email with your office tasks.

Task titles may start with a cost estimate and flags:

  [30m] ! Call client     30 minutes, sensitive (kept out of the email)
  2h - Write report       2 hours
  1d Quarterly planning   one work-day`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFlags(0)
		log.SetPrefix("morningtasks: ")
	},
}

var (
	configPath string
	dayFlag    string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/morningtasks/config.json)")
	rootCmd.PersistentFlags().StringVar(&dayFlag, "date", "", "day to plan as YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress details")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(meetingsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// planDay returns the --date day, or today, at local midnight.
func planDay() (time.Time, error) {
	if dayFlag == "" {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
	}
	day, err := time.ParseInLocation(model.DateLayout, dayFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", dayFlag, err)
	}
	return day, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}
