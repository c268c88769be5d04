package cmd

import (
	"github.com/spf13/cobra"
)

// typesCmd represents the types command.
var typesCmd = newTypesCmd()

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the component types scripts can get",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Types()
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
