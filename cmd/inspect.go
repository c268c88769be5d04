package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/ecslua/internal/domain"
	m "github.com/mouse-blink/ecslua/internal/model"
)

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <scene> <trace>...",
		Short: "Resolve references against a scene",
		Long: `Resolve display traces such as 0v0.Transform.translation.x against a scene
and print how each one classifies and what it currently holds. Use "" as the
scene for the default scene.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Inspect(domain.InspectArgs{
				Scene:  m.Path(args[0]),
				Traces: args[1:],
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
