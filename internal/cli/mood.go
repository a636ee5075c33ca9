package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record a mood check-in",
		Run:   runMood,
	}

	cmd.Flags().StringP("user", "u", "", "User ID (required)")
	cmd.Flags().IntP("value", "v", 0, "Mood 1 (terrible) to 5 (great) (required)")
	cmd.Flags().StringP("type", "t", "", "Check-in period: morning, afternoon, evening (required)")
	cmd.Flags().String("factors", "", "Comma-separated contributing factors")
	cmd.Flags().String("notes", "", "Free-form notes")

	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("value")
	cmd.MarkFlagRequired("type")

	RootCmd.AddCommand(cmd)
}

func runMood(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	value, _ := cmd.Flags().GetInt("value")
	typ, _ := cmd.Flags().GetString("type")
	factors, _ := cmd.Flags().GetString("factors")
	notes, _ := cmd.Flags().GetString("notes")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m, err := s.AddMoodCheckin(cmd.Context(), store.MoodParams{
		UserID:  user,
		Value:   value,
		Type:    model.CheckInType(typ),
		Factors: splitList(factors),
		Notes:   notes,
		At:      timeNow(),
	})
	if err != nil {
		exitErr("mood", err)
	}
	printJSON(m)
}
