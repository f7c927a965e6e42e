package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockhand/internal/notify"
)

var testNotificationCmd = &cobra.Command{
	Use:   "test-notification",
	Short: "Send a test desktop notification",
	Args:  cobra.NoArgs,
	RunE:  runTestNotification,
}

func runTestNotification(cmd *cobra.Command, args []string) error {
	body := fmt.Sprintf("This is a test notification at %s", time.Now().Format(time.RFC1123Z))
	if err := (notify.Desktop{}).Notify("Test notification from clockhand", body); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("Notification sent.")
	return nil
}
