package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/ecslua/internal/domain"
	m "github.com/mouse-blink/ecslua/internal/model"
)

const runLongDescription = `Run a Lua script over one or more scenes.

The script runs once for every live entity in every phase, with the global
entity bound to the current record and deltaTime set to --dt. Scenes run in
parallel, up to --parallel at a time. A scene argument may be a directory,
or dir/... to search it recursively for .yaml files. Without a scene the default scene (one
entity with a Transform) is used; without --script a demo script is run.

A failing record is reported and the phase carries on. After the last phase
every record of every scene is printed.`

var runScriptFlag string
var runPhasesFlag int
var runDeltaTimeFlag float64
var runParallelFlag int
var runWatchFlag bool
var runSaveFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenes...]",
		Short: "Run a script over scenes",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *settings

			if cmd.Flags().Changed("script") {
				cfg.Script = runScriptFlag
			}

			if cmd.Flags().Changed("phases") {
				cfg.Phases = runPhasesFlag
			}

			if cmd.Flags().Changed("dt") {
				cfg.DeltaTime = runDeltaTimeFlag
			}

			if cmd.Flags().Changed("parallel") {
				cfg.Parallel = runParallelFlag
			}

			if cmd.Flags().Changed("watch") {
				cfg.Watch = runWatchFlag
			}

			if len(args) > 0 {
				cfg.Scenes = args
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Scenes:    parsePaths(cfg.Scenes),
				Script:    m.Path(cfg.Script),
				Phases:    cfg.Phases,
				DeltaTime: cfg.DeltaTime,
				Threads:   cfg.Parallel,
				Watch:     cfg.Watch,
				Save:      m.Path(runSaveFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&runScriptFlag, "script", "s", "", "Lua script to run (default demo script)")
	cmd.Flags().IntVarP(&runPhasesFlag, "phases", "n", 1, "number of phases to run")
	cmd.Flags().Float64Var(&runDeltaTimeFlag, "dt", 1.0/60.0, "value of deltaTime in every phase")
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of scenes run in parallel")
	cmd.Flags().BoolVarP(&runWatchFlag, "watch", "w", false, "run again whenever the script changes")
	cmd.Flags().StringVar(&runSaveFlag, "save", "", "directory to write the final state of every scene to")

	return cmd
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func init() {
	rootCmd.AddCommand(runCmd)
}
