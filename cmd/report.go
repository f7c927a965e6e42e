package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/harvest"
	"github.com/Tiliavir/clockhand/internal/timecalc"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time entries for the most recent two weeks",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "table", "Output format: table, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, _ := newClient(ctx)

	weekStart, _ := timecalc.WeekRange(time.Now())
	from := weekStart.AddDate(0, 0, -7)

	entries, err := client.ListEntries(ctx, from)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch reportFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		printReportCSV(entries)
	default: // table
		printReportTable(entries)
	}

	return nil
}

func printReportTable(entries []harvest.TimeEntry) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		notes := e.Notes
		if notes == "" {
			notes = "(none)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			e.SpentDate,
			e.Project.ID,
			stripNewlinesAndTabs(e.Project.Name),
			timecalc.FormatDecimalHours(e.Hours),
			truncateWithEllipsis(stripNewlinesAndTabs(notes), 60),
		)
	}
	tw.Flush()
}

func printReportCSV(entries []harvest.TimeEntry) {
	fmt.Println("date,project_id,project,hours,notes")
	for _, e := range entries {
		fmt.Printf("%s,%d,%s,%.2f,%s\n",
			e.SpentDate,
			e.Project.ID,
			csvEscape(e.Project.Name),
			e.Hours,
			csvEscape(e.Notes),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}

// stripNewlinesAndTabs removes characters that would break the tab-aligned table.
func stripNewlinesAndTabs(s string) string {
	return strings.NewReplacer("\t", "", "\n", "", "\r", "").Replace(s)
}

// truncateWithEllipsis shortens s to roughly max bytes on a word boundary,
// appending an ellipsis when anything was cut.
func truncateWithEllipsis(s string, max int) string {
	words := strings.Fields(s)
	var b strings.Builder
	for _, w := range words {
		if b.Len()+len(w) > max {
			b.WriteString("…")
			break
		}
		b.WriteString(w)
		b.WriteByte(' ')
	}
	return strings.TrimRight(b.String(), " ")
}
