package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/config"
	"github.com/Tiliavir/clockhand/internal/harvest"
)

var rootCmd = &cobra.Command{
	Use:   "clockhand",
	Short: "clockhand – reminds you to run your time tracker",
	Long: `clockhand watches your project directories and raises a desktop
notification when files change while no Harvest timer is running.
It can also start, stop, inspect, and annotate the current timer.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(testNotificationCmd)
}

// newClient loads the config and builds an authenticated Harvest client.
// Missing credentials are fatal with setup instructions.
func newClient(ctx context.Context) (*harvest.Client, config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Harvest.Token == "" || cfg.Harvest.AccountID == 0 {
		path, _ := config.FilePath()
		fmt.Fprintf(os.Stderr, `Missing Harvest credentials in %s.

  1. Visit https://id.getharvest.com/developers
  2. Create a new personal access token
  3. Fill in "token" and "account_id" in the config file
`, path)
		os.Exit(2)
	}
	return harvest.NewClient(ctx, cfg.Harvest.Token, cfg.Harvest.AccountID, cfg.Harvest.BaseURL), cfg
}
