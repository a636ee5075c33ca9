package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List feedback messages",
		Long:  "List a user's unexpired feedback messages, highest priority first.",
		Run:   runMessages,
	}

	cmd.Flags().StringP("user", "u", "", "User ID (required)")
	cmd.Flags().StringP("status", "s", "", "Filter by status: unread, read, dismissed, acted_upon")
	cmd.Flags().StringP("category", "c", "", "Filter by category")
	cmd.Flags().IntP("min-priority", "p", 0, "Only messages at or above this priority")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runMessages(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	minPriority, _ := cmd.Flags().GetInt("min-priority")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	msgs, err := s.ListMessages(cmd.Context(), store.ListMessagesParams{
		UserID:      user,
		Status:      model.Status(status),
		Category:    model.Category(category),
		MinPriority: minPriority,
		Limit:       limit,
	})
	if err != nil {
		exitErr("messages", err)
	}

	if formatFlag == "text" {
		for _, m := range msgs {
			fmt.Printf("[%2d] %-10s %-8s %s\n     %s\n", m.Priority, m.Category, m.Status, m.Title, m.Message)
		}
		return
	}
	if msgs == nil {
		msgs = []model.FeedbackMessage{}
	}
	printJSON(msgs)
}
