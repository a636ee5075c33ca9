package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/feedback-engine/internal/model"
)

func init() {
	statusCmd := &cobra.Command{
		Use:   "status [message-id]",
		Short: "Change a message's status",
		Args:  cobra.ExactArgs(1),
		Run:   runStatus,
	}

	statusCmd.Flags().StringP("user", "u", "", "User ID (required)")
	statusCmd.Flags().String("set", "read", "New status: unread, read, dismissed, acted_upon")

	statusCmd.MarkFlagRequired("user")

	readAllCmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark all unread messages as read",
		Run:   runReadAll,
	}

	readAllCmd.Flags().StringP("user", "u", "", "User ID (required)")

	readAllCmd.MarkFlagRequired("user")

	RootCmd.AddCommand(statusCmd, readAllCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	status, _ := cmd.Flags().GetString("set")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m, err := s.UpdateMessageStatus(cmd.Context(), user, args[0], model.Status(status))
	if err != nil {
		exitErr("status", err)
	}
	printJSON(m)
}

func runReadAll(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.MarkAllRead(cmd.Context(), user)
	if err != nil {
		exitErr("read-all", err)
	}
	unread, err := s.CountUnread(cmd.Context(), user)
	if err != nil {
		exitErr("count unread", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"user":%q,"marked":%d,"unread":%d}`+"\n", user, n, unread)
}
