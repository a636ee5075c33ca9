package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

func init() {
	cmd := &cobra.Command{
		Use:   "triggers",
		Short: "List the trigger catalog",
		Run:   runTriggers,
	}

	cmd.Flags().StringP("category", "c", "", "Only this category")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for duplicate ids, bad priorities, cooldowns and templates",
		Run:   runTriggersValidate,
	}

	cmd.AddCommand(validateCmd)
	RootCmd.AddCommand(cmd)
}

func runTriggers(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")

	defs := trigger.All()
	if category != "" {
		defs = trigger.ListByCategory(model.Category(category))
	}

	if formatFlag == "text" {
		for _, d := range defs {
			fmt.Printf("%-12s %-36s p=%-2d cd=%-4dh %s\n",
				d.Category, d.ID, d.Priority, d.CooldownHours, strings.Join(d.Placeholders(), ","))
		}
		return
	}
	printJSON(defs)
}

func runTriggersValidate(cmd *cobra.Command, args []string) {
	if err := trigger.Validate(); err != nil {
		exitErr("catalog", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"triggers":%d}`+"\n", len(trigger.All()))
}
