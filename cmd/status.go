package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current timer status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, _ := newClient(ctx)

	snap, err := client.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if snap.Running {
		fmt.Println("Running:")
		fmt.Printf("  Project: %s\n", snap.ProjectName)
		if !snap.StartedAt.IsZero() {
			fmt.Printf("  Since: %s\n", snap.StartedAt.Local().Format("15:04"))
			elapsed := int64(time.Since(snap.StartedAt).Seconds())
			fmt.Printf("  Elapsed: %s\n", timecalc.FormatDurationHHMMSS(elapsed))
		} else {
			fmt.Printf("  Logged: %s\n", timecalc.FormatDecimalHours(snap.Hours))
		}
		return nil
	}

	// Idle — show today's total.
	entries, err := client.ListEntries(ctx, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	var total float64
	for _, e := range entries {
		total += e.Hours
	}

	fmt.Println("No active timer.")
	fmt.Printf("Today: %s logged.\n", timecalc.FormatDecimalHours(total))
	return nil
}
