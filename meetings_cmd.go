package main

import (
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/morningtasks/pkg/google"
	"github.com/harrisonrobin/morningtasks/pkg/index"
	"github.com/harrisonrobin/morningtasks/pkg/meetings"
	"github.com/harrisonrobin/morningtasks/pkg/model"
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "Add today's calendar meetings as tasks with their length as estimate",
	Args:  cobra.NoArgs,
	RunE:  runMeetings,
}

var meetingsDryRun bool

func init() {
	meetingsCmd.Flags().BoolVar(&meetingsDryRun, "dry-run", false, "show the tasks without creating them")
}

func runMeetings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	day, err := planDay()
	if err != nil {
		return err
	}

	tasksSrv, calendarSrv, err := google.NewServices(ctx)
	if err != nil {
		return err
	}
	calendarID, err := google.ResolveCalendarID(ctx, calendarSrv, cfg.MeetingCalendar)
	if err != nil {
		return err
	}
	tasksClient := google.NewTasksClient(tasksSrv, cfg.RequestsPerSecond)
	listID, err := tasksClient.FindList(ctx, cfg.MeetingList)
	if err != nil {
		return err
	}

	idxPath, err := index.DefaultPath()
	if err != nil {
		return err
	}
	idx, err := index.NewMeetingIndex(idxPath)
	if err != nil {
		log.Printf("Warning: failed to load meeting index, starting empty: %v", err)
		idx = &index.MeetingIndex{Mappings: make(map[string]string), Path: idxPath}
	}
	idx.Prune(day.Format(model.DateLayout))

	registrar := &meetings.Registrar{
		Calendar: google.NewCalendarClient(calendarSrv, calendarID),
		Tasks:    tasksClient,
		Index:    idx,
		ListID:   listID,
		DryRun:   meetingsDryRun,
	}
	results, regErr := registrar.Register(ctx, day)
	if !meetingsDryRun {
		if err := idx.Save(); err != nil {
			log.Printf("Warning: failed to save meeting index: %v", err)
		}
	}

	if len(results) == 0 && regErr == nil {
		fmt.Println("No meetings today.")
		return nil
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Time", "Task", "Status")
	for _, res := range results {
		status := green.Sprint("created")
		switch {
		case res.Skipped:
			status = faint.Sprint("exists")
		case meetingsDryRun:
			status = yellow.Sprint("dry run")
		}
		_ = table.Append(res.Meeting.Start.Local().Format("15:04"), res.Title, status)
	}
	_ = table.Render()
	return regErr
}
