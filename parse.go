package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
)

var parseCmd = &cobra.Command{
	Use:   "parse [title...]",
	Short: "Show how task titles are read (titles from stdin when none given)",
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	parser, err := annotation.New(cfg.AnnotationConfig())
	if err != nil {
		return err
	}

	titles := args
	if len(titles) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				titles = append(titles, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading titles: %w", err)
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Title", "Cost", "Flags", "Content")
	for _, title := range titles {
		row, err := parseRow(parser, title)
		if err != nil {
			return err
		}
		_ = table.Append(row)
	}
	_ = table.Render()
	return nil
}

func parseRow(parser *annotation.Parser, title string) ([]string, error) {
	a, err := parser.Parse(title)
	if errors.Is(err, annotation.ErrNoMatch) {
		return []string{title, red.Sprint("no match"), "", ""}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%q: %w", title, err)
	}
	flags := make([]rune, len(a.Flags))
	for i, f := range a.Flags {
		flags[i] = rune(f)
	}
	return []string{title, minutes(a.CostMinutes), string(flags), a.Content}, nil
}
