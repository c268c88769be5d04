// Package cmd provides the root command and CLI setup for ecslua.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/ecslua/internal/adapter"
	"github.com/mouse-blink/ecslua/internal/config"
	"github.com/mouse-blink/ecslua/internal/controller"
	"github.com/mouse-blink/ecslua/internal/domain"
	"github.com/mouse-blink/ecslua/internal/script"
)

var sceneStore adapter.SceneStore
var scriptSource adapter.ScriptSource
var watcher adapter.Watcher
var registry *domain.Registry
var workflow domain.Workflow
var ui controller.UI
var logger *slog.Logger
var logLevel = new(slog.LevelVar)
var newLineReader = func() adapter.LineReader { return adapter.NewLinerReader() }

// settings is the loaded config, set before any subcommand runs.
var settings = config.Defaults()

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sceneStore = adapter.NewLocalSceneStore()
	scriptSource = adapter.NewLocalScriptSource()
	watcher = adapter.NewFSWatcher()
	registry = domain.NewDefaultRegistry()
	workflow = domain.NewWorkflow(
		sceneStore,
		scriptSource,
		ui,
		registry,
		newHost,
		domain.WithLogger(logger),
		domain.WithWatcher(watcher),
	)
}

var configFlag string
var logLevelFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecslua",
		Short: "Run Lua scripts against entity/component scenes",
		Long: `ecslua loads scenes of entities and components from YAML and runs a Lua
script once per entity per phase. Scripts reach component data through
references addressed by dotted paths:

  local tf = entity:get("Transform")
  tf.translation.x = tf.translation.x + deltaTime

Settings are read from ecslua.yaml in the working directory, or from the
file named by --config. Command line flags override file values.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevelFlag
			}

			level, err := config.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}

			logLevel.Set(level)
			settings = cfg

			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default ecslua.yaml when present)")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level: debug, info, warn or error")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func newHost(scene string) domain.ScriptHost {
	return script.NewHost(
		script.WithOutput(scriptOutput()),
		script.WithPrefix("["+scene+"] "),
		script.WithLogger(logger.With("scene", scene)),
	)
}

var outputOnce sync.Once
var sharedOutput io.Writer

// scriptOutput is shared by every host; scenes print concurrently.
func scriptOutput() io.Writer {
	outputOnce.Do(func() {
		sharedOutput = &lockedWriter{w: rootCmd.OutOrStdout()}
	})

	return sharedOutput
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}
