package controller

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	worlds  []string
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress view. Console mode keeps the terminal free for
// line editing and renders everything statically.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options...)
	if cfg.mode == ModeConsole {
		return nil
	}

	return t.startWithModel(newRunModel(terminalWidth(t.output, 80)))
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("ui already started")
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output))
	t.done = make(chan struct{})

	program, done := t.program, t.done

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	return nil
}

// Close stops the progress view and prints the collected world tables.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program = nil
	worlds := t.worlds
	t.worlds = nil
	t.mu.Unlock()

	if program != nil {
		program.Send(finishedMsg{})
		<-done
	}

	for _, world := range worlds {
		_, _ = fmt.Fprint(t.output, world)
	}
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

// DisplayRunInfo shows the size of the run.
func (t *TUI) DisplayRunInfo(scenes int, phases int, threads int) {
	if !t.send(runInfoMsg{scenes: scenes, phases: phases, threads: threads}) {
		t.printf("Running %d scene(s) for %d phase(s) with %d worker(s)\n", scenes, phases, threads)
	}
}

// DisplayPhase advances the progress bar and lists failures.
func (t *TUI) DisplayPhase(report m.PhaseReport) {
	if t.send(phaseMsg{report: report}) {
		return
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	t.printf("[%s] phase %d: %d record(s), %d failed\n", report.Scene, report.Phase, report.Records, len(report.Failures))

	for _, failure := range report.Failures {
		t.printf("%s\n", style.Render(fmt.Sprintf("  %s: %v", failure.Entity, failure.Err)))
	}
}

// DisplayWorld records the world table; it is printed once the view closes.
func (t *TUI) DisplayWorld(scene string, records []m.RecordDump) {
	rendered := renderWorld(scene, records)

	if !t.send(worldMsg{scene: scene, records: len(records)}) {
		t.printf("%s", rendered)
		return
	}

	t.mu.Lock()
	t.worlds = append(t.worlds, rendered)
	t.mu.Unlock()
}

// DisplayInspection renders inspection rows statically.
func (t *TUI) DisplayInspection(rows []m.Inspection) error {
	var buf bytes.Buffer

	err := renderInspection(&buf, rows)
	t.printf("%s", buf.String())

	return err
}

// DisplayTypes renders the type list statically.
func (t *TUI) DisplayTypes(types []m.TypeInfo) error {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("Registered components")

	var buf bytes.Buffer

	table := newTable(&buf, "Name", "Kind", "Fields")
	for _, info := range types {
		table.Append([]string{info.Name, info.Kind, strings.Join(info.Fields, ", ")})
	}

	table.Render()
	t.printf("%s\n%s", title, buf.String())

	return nil
}

// DisplayNotice shows a free-form message.
func (t *TUI) DisplayNotice(message string) {
	if !t.send(noticeMsg{text: message}) {
		t.printf("%s\n", message)
	}
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.output, format, args...)
}

func renderWorld(scene string, records []m.RecordDump) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render(scene)

	if len(records) == 0 {
		return title + ": world is empty\n"
	}

	var buf bytes.Buffer

	table := newTable(&buf, "Entity", "Component", "Value")
	for _, record := range records {
		table.Append([]string{record.Entity.String(), record.Type, fmt.Sprintf("%+v", record.Value)})
	}

	table.Render()

	return "\n" + title + "\n" + buf.String()
}
