package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update a user's profile",
		Long:  "Without --target-weight, print the stored profile. With it, save the new target.",
		Run:   runProfile,
	}

	cmd.Flags().StringP("user", "u", "", "User ID (required)")
	cmd.Flags().Float64("target-weight", 0, "Target weight in kg")

	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runProfile(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if cmd.Flags().Changed("target-weight") {
		target, _ := cmd.Flags().GetFloat64("target-weight")
		p := &model.Profile{UserID: user, TargetWeight: &target}
		if err := s.SetProfile(cmd.Context(), p); err != nil {
			exitErr("profile", err)
		}
	}

	p, err := s.GetProfile(cmd.Context(), user)
	if errors.Is(err, store.ErrNotFound) {
		p = &model.Profile{UserID: user}
	} else if err != nil {
		exitErr("profile", err)
	}
	printJSON(p)
}
