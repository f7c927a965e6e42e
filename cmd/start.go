package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/harvest"
	"github.com/Tiliavir/clockhand/internal/model"
)

var (
	startProjectID int64
	startAdd       int
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume a timer",
	Long: `start resumes today's most recent time entry, or creates a new one
when --project is given. --add backdates the start so time spent before
remembering to start the timer is still counted.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	startCmd.Flags().Int64Var(&startProjectID, "project", 0, "Harvest project ID to start a new entry for")
	startCmd.Flags().IntVar(&startAdd, "add", 0, "Backdate the start time by this many minutes")
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, _ := newClient(ctx)

	backdate := time.Duration(startAdd) * time.Minute

	var snap model.TimerSnapshot
	var err error
	if startProjectID != 0 {
		snap, err = client.StartTimer(ctx, startProjectID, backdate)
	} else {
		snap, err = client.RestartLatest(ctx, backdate)
	}
	if errors.Is(err, harvest.ErrNotFound) {
		fmt.Fprintln(os.Stderr, "No entry today to resume; pass --project to start a new one.")
		os.Exit(1)
	}
	if errors.Is(err, harvest.ErrTimerRunning) {
		fmt.Fprintf(os.Stderr, "Timer already running for %q.\n", snap.ProjectName)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	msg := fmt.Sprintf("Started timer for %q", snap.ProjectName)
	if startAdd > 0 {
		msg += fmt.Sprintf(" (backdated %dm)", startAdd)
	}
	fmt.Println(msg)
	return nil
}
