package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/harvest"
	"github.com/Tiliavir/clockhand/internal/timecalc"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the currently running timer",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, _ := newClient(ctx)

	snap, err := client.StopTimer(ctx)
	if errors.Is(err, harvest.ErrNoRunningTimer) {
		fmt.Fprintln(os.Stderr, "No active timer to stop.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Stopped timer for %q. Logged: %s\n",
		snap.ProjectName, timecalc.FormatDecimalHours(snap.Hours))
	return nil
}
