package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/config"
	"github.com/Tiliavir/clockhand/internal/notify"
	"github.com/Tiliavir/clockhand/internal/watch"
)

var watchInterval int

var watchCmd = &cobra.Command{
	Use:   "watch <project-config-path>...",
	Short: "Watch project directories and nag when no timer is running",
	Long: `watch polls every configured project's directory tree and raises a
desktop notification when files change while no Harvest timer is running
for that project.

Each argument is a path (or glob) to a clockhand.json project file:
  {"project_id": 12345, "name": "Project A"}
The project root is the directory containing the file, or its parent when
the file lives in a .config directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchInterval, "interval", "i", 0, "Polling interval in seconds (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, cfg := newClient(ctx)

	projects, warnings := config.LoadProjects(args)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	}
	if len(projects) == 0 {
		fmt.Fprintln(os.Stderr, "no valid project configs to watch")
		os.Exit(2)
	}

	interval := watchInterval
	if interval <= 0 {
		interval = cfg.Watch.IntervalSeconds
	}

	watched := make([]watch.Project, 0, len(projects))
	for _, p := range projects {
		fmt.Printf("Watching %s (%s)\n", p.Root, p.Name)
		watched = append(watched, watch.Project{Name: p.Name, Root: p.Root, ID: p.ProjectID})
	}

	loop := watch.NewLoop(watched, client, notify.Desktop{}, time.Duration(interval)*time.Second, os.Stdout)
	loop.Run(ctx)

	fmt.Println("Shutting down.")
	return nil
}
