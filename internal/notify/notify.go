// Package notify delivers desktop notifications.
package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Notifier delivers a single notification. Delivery is best-effort; a
// failure is reported to the caller and must never be fatal to a watch loop.
type Notifier interface {
	Notify(title, body string) error
}

const execTimeout = 5 * time.Second

// Desktop notifies through the platform's notification mechanism:
// osascript on macOS, notify-send on Linux. On other platforms the
// notification is printed to stderr.
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), execTimeout)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q sound name \"Sosumi\"", body, title)
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	case "linux":
		cmd = exec.CommandContext(ctx, "notify-send", title, body)
	default:
		fmt.Fprintf(os.Stderr, "%s: %s\n", title, body)
		return nil
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}
