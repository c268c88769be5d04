package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/ecslua/internal/domain"
	m "github.com/mouse-blink/ecslua/internal/model"
)

var replDeltaTimeFlag float64

// replCmd represents the repl command.
var replCmd = newReplCmd()

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [scene]",
		Short: "Run Lua interactively against a scene",
		Long: `Read Lua from the terminal and run every chunk once per entity of the
scene, as one phase. Type :world to print the scene and :quit to leave.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scene m.Path
			if len(args) == 1 {
				scene = m.Path(args[0])
			}

			deltaTime := settings.DeltaTime
			if cmd.Flags().Changed("dt") {
				deltaTime = replDeltaTimeFlag
			}

			lines := newLineReader()
			defer lines.Close()

			return workflow.Console(cmd.Context(), domain.ConsoleArgs{
				Scene:     scene,
				DeltaTime: deltaTime,
			}, lines)
		},
	}
	cmd.Flags().Float64Var(&replDeltaTimeFlag, "dt", 1.0/60.0, "value of deltaTime in every chunk")

	return cmd
}

func init() {
	rootCmd.AddCommand(replCmd)
}
