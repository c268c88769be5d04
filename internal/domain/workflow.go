// Package domain contains the reflective path-addressing engine and the
// workflow that drives scripts over a store one phase at a time.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/ecslua/internal/adapter"
	"github.com/mouse-blink/ecslua/internal/controller"
	m "github.com/mouse-blink/ecslua/internal/model"
)

// ScriptHost runs a loaded script once per record during a phase.
type ScriptHost interface {
	// Load compiles source; later invocations run the most recent script.
	Load(name string, source []byte) error
	// BeginPhase publishes phase-wide globals.
	BeginPhase(phase *Phase)
	// RunRecord invokes the script with entity bound as the current record.
	RunRecord(phase *Phase, entity m.Entity) error
	// EndPhase clears phase-wide globals.
	EndPhase(phase *Phase)
	Close()
}

// HostFactory creates one ScriptHost per scene.
type HostFactory func(scene string) ScriptHost

// RunArgs configures Workflow.Run.
type RunArgs struct {
	Scenes    []m.Path
	Script    m.Path
	Phases    int
	DeltaTime float64
	Threads   int
	Watch     bool
	// Save, when set, is a directory the final state of every scene is
	// written to as <scene>.yaml.
	Save m.Path
}

// InspectArgs configures Workflow.Inspect.
type InspectArgs struct {
	Scene  m.Path
	Traces []string
}

// ConsoleArgs configures Workflow.Console.
type ConsoleArgs struct {
	Scene     m.Path
	DeltaTime float64
}

// Workflow defines the operations exposed to the command line.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Inspect(args InspectArgs) error
	Types() error
	Console(ctx context.Context, args ConsoleArgs, lines adapter.LineReader) error
}

// WorkflowOption customises a Workflow.
type WorkflowOption func(*workflow)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) WorkflowOption {
	return func(w *workflow) {
		w.logger = logger
	}
}

// WithWatcher enables Run's watch mode.
func WithWatcher(watcher adapter.Watcher) WorkflowOption {
	return func(w *workflow) {
		w.watcher = watcher
	}
}

type workflow struct {
	scenes   adapter.SceneStore
	scripts  adapter.ScriptSource
	ui       controller.UI
	registry *Registry
	newHost  HostFactory
	watcher  adapter.Watcher
	logger   *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	scenes adapter.SceneStore,
	scripts adapter.ScriptSource,
	ui controller.UI,
	registry *Registry,
	newHost HostFactory,
	options ...WorkflowOption,
) Workflow {
	w := &workflow{
		scenes:   scenes,
		scripts:  scripts,
		ui:       ui,
		registry: registry,
		newHost:  newHost,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(w)
	}

	return w
}

// Run executes the script over every scene for the requested number of
// phases, scenes in parallel.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if args.Threads <= 0 {
		args.Threads = 1
	}

	if args.Phases <= 0 {
		args.Phases = 1
	}

	if len(args.Scenes) == 0 {
		args.Scenes = []m.Path{""}
	}

	scenes, err := w.scenes.Find(args.Scenes)
	if err != nil {
		return err
	}

	if len(scenes) == 0 {
		return fmt.Errorf("no scene files found in %v", args.Scenes)
	}

	args.Scenes = scenes

	if args.Save != "" {
		if err := checkSaveNames(scenes); err != nil {
			return err
		}
	}

	if err := w.ui.Start(controller.WithRunMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	source, err := w.scripts.ReadScript(args.Script)
	if err != nil {
		return err
	}

	w.ui.DisplayRunInfo(len(args.Scenes), args.Phases, args.Threads)

	if err := w.runScenes(ctx, args, source); err != nil {
		return err
	}

	if !args.Watch || w.watcher == nil || args.Script == "" {
		return nil
	}

	w.ui.DisplayNotice(fmt.Sprintf("watching %s for changes", args.Script))

	return w.watcher.Watch(ctx, args.Script, func() {
		source, err := w.scripts.ReadScript(args.Script)
		if err != nil {
			w.logger.Error("reload failed", "script", args.Script, "error", err)
			return
		}

		w.logger.Info("script changed, running again", "script", args.Script)

		if err := w.runScenes(ctx, args, source); err != nil {
			w.logger.Error("run failed", "script", args.Script, "error", err)
		}
	})
}

// checkSaveNames rejects scene sets whose saved files would collide.
func checkSaveNames(scenes []m.Path) error {
	seen := make(map[string]m.Path, len(scenes))

	for _, scene := range scenes {
		name := adapter.SceneName(scene)
		if other, ok := seen[name]; ok {
			return fmt.Errorf("scenes %s and %s would both be saved as %s.yaml", other, scene, name)
		}

		seen[name] = scene
	}

	return nil
}

func (w *workflow) runScenes(ctx context.Context, args RunArgs, source []byte) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(args.Threads)

	for _, scene := range args.Scenes {
		g.Go(func() error {
			return w.runScene(gctx, scene, args, source)
		})
	}

	return g.Wait()
}

func (w *workflow) runScene(ctx context.Context, scene m.Path, args RunArgs, source []byte) error {
	name := adapter.SceneName(scene)

	world, err := w.scenes.Load(scene, w.registry.NewComponent)
	if err != nil {
		return err
	}

	host := w.newHost(name)
	defer host.Close()

	scriptName := string(args.Script)
	if scriptName == "" {
		scriptName = "default"
	}

	if err := host.Load(scriptName, source); err != nil {
		return fmt.Errorf("failed to load script for scene %s: %w", name, err)
	}

	for index := range args.Phases {
		if err := ctx.Err(); err != nil {
			return err
		}

		report := w.RunPhase(name, world, host, index, args.DeltaTime)
		w.ui.DisplayPhase(report)
	}

	records := world.Snapshot()
	w.ui.DisplayWorld(name, records)

	if args.Save == "" {
		return nil
	}

	path := m.Path(filepath.Join(string(args.Save), name+".yaml"))
	if err := w.scenes.Save(path, records); err != nil {
		return err
	}

	w.logger.Info("scene saved", "scene", name, "path", path)

	return nil
}

// RunPhase hands world to host for one phase: every live entity is visited
// once in index order. A failing record does not stop the phase.
func (w *workflow) RunPhase(scene string, world *adapter.World, host ScriptHost, index int, deltaTime float64) m.PhaseReport {
	store := world.Acquire()
	defer store.Release()

	phase := NewPhase(index, store, w.registry, deltaTime)
	defer phase.End()

	host.BeginPhase(phase)
	defer host.EndPhase(phase)

	report := m.PhaseReport{Scene: scene, Phase: index}

	w.logger.Debug("phase started", "scene", scene, "phase", index)

	for _, entity := range phase.Entities() {
		if !phase.Alive(entity) {
			report.Skipped++
			continue
		}

		report.Records++

		if err := host.RunRecord(phase, entity); err != nil {
			report.Failures = append(report.Failures, m.RecordFailure{Entity: entity, Err: err})
			w.logger.Warn("script failed", "scene", scene, "phase", index, "entity", entity.String(), "error", err)
		}
	}

	w.logger.Debug("phase finished", "scene", scene, "phase", index,
		"records", report.Records, "failures", len(report.Failures))

	return report
}

// Inspect resolves display traces against a scene and reports their
// classification and current value.
func (w *workflow) Inspect(args InspectArgs) error {
	world, err := w.scenes.Load(args.Scene, w.registry.NewComponent)
	if err != nil {
		return err
	}

	store := world.Acquire()
	defer store.Release()

	phase := NewPhase(0, store, w.registry, 0)
	defer phase.End()

	rows := make([]m.Inspection, 0, len(args.Traces))
	for _, trace := range args.Traces {
		rows = append(rows, inspect(phase, trace))
	}

	return w.ui.DisplayInspection(rows)
}

func inspect(phase *Phase, trace string) m.Inspection {
	row := m.Inspection{Trace: trace, Component: -1}

	ref, err := ParseTrace(phase.Registry(), trace)
	if err != nil {
		row.Err = err
		return row
	}

	resolved, err := Classify(phase, ref)
	if err != nil {
		row.Err = err
		return row
	}

	value, err := Clone(phase, ref)
	if err != nil {
		row.Err = err
		return row
	}

	row.Kind = resolved.Kind.String()
	row.Component = resolved.Component
	row.Value = value.String()

	return row
}

// Types lists the registered component types.
func (w *workflow) Types() error {
	descriptors := w.registry.Descriptors()

	types := make([]m.TypeInfo, 0, len(descriptors))
	for _, d := range descriptors {
		types = append(types, Describe(d))
	}

	return w.ui.DisplayTypes(types)
}

// Console reads script chunks interactively; each chunk runs as one phase
// over every entity of the scene.
func (w *workflow) Console(ctx context.Context, args ConsoleArgs, lines adapter.LineReader) error {
	if err := w.ui.Start(controller.WithConsoleMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	name := adapter.SceneName(args.Scene)

	world, err := w.scenes.Load(args.Scene, w.registry.NewComponent)
	if err != nil {
		return err
	}

	host := w.newHost(name)
	defer host.Close()

	w.ui.DisplayNotice("type Lua to run it once per entity, :world to dump the scene, :quit to leave")

	for index := 0; ctx.Err() == nil; {
		line, err := lines.Prompt(name + "> ")
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lines.AppendHistory(line)

		switch line {
		case ":quit", ":q":
			return nil
		case ":world":
			w.ui.DisplayWorld(name, world.Snapshot())
			continue
		}

		if err := host.Load("console", []byte(line)); err != nil {
			w.ui.DisplayNotice(err.Error())
			continue
		}

		w.ui.DisplayPhase(w.RunPhase(name, world, host, index, args.DeltaTime))
		index++
	}

	return nil
}
