package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/harvest"
	"github.com/Tiliavir/clockhand/internal/note"
)

var noteDay string

var noteCmd = &cobra.Command{
	Use:   "note <message>",
	Short: "Attach a note to a day's timer",
	Long: `note merges the message into the day's timer notes. Repeating the
command for the same day replaces the previous note instead of appending a
duplicate; notes written by hand or for other days are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNote,
}

func init() {
	noteCmd.Flags().StringVar(&noteDay, "day", "", "Day to annotate (YYYY-MM-DD, default today)")
}

func runNote(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	day := time.Now()
	if noteDay != "" {
		d, err := time.Parse("2006-01-02", noteDay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --day value %q: %v\n", noteDay, err)
			os.Exit(1)
		}
		day = d
	}

	ctx := context.Background()
	client, _ := newClient(ctx)

	entry, err := client.DayEntry(ctx, day)
	if errors.Is(err, harvest.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "No timer found for %s.\n", day.Format("2006-01-02"))
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	merged := note.Merge(entry.Notes, day, message)
	if merged == entry.Notes {
		fmt.Println("Note already up to date.")
		return nil
	}
	if err := client.UpdateNotes(ctx, entry.ID, merged); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Noted on %s: %s\n", day.Format("2006-01-02"), message)
	return nil
}
