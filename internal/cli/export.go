package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries, check-ins, profiles and messages as JSON",
		Long:  "Export the whole database as one JSON document. Filter by user with -u.",
		Run:   runExport,
	}

	cmd.Flags().StringP("user", "u", "", "Filter by user")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ex, err := s.ExportAll(cmd.Context(), user)
	if err != nil {
		exitErr("export", err)
	}

	printJSON(ex)
}
