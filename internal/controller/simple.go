package controller

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	m "github.com/mouse-blink/ecslua/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayRunInfo prints the size of the run.
func (s *SimpleUI) DisplayRunInfo(scenes int, phases int, threads int) {
	s.printf("Running %d scene(s) for %d phase(s) with %d worker(s)\n", scenes, phases, threads)
}

// DisplayPhase prints a one-line phase summary followed by its failures.
func (s *SimpleUI) DisplayPhase(report m.PhaseReport) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] phase %d: %d record(s), %d skipped, %d failed\n",
		report.Scene, report.Phase, report.Records, report.Skipped, len(report.Failures))

	for _, failure := range report.Failures {
		fmt.Fprintf(&sb, "  %s: %v\n", failure.Entity, failure.Err)
	}

	s.printf("%s", sb.String())
}

// DisplayWorld prints every record of a scene as a table.
func (s *SimpleUI) DisplayWorld(scene string, records []m.RecordDump) {
	if len(records) == 0 {
		s.printf("\n[%s] world is empty\n", scene)
		return
	}

	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, "Entity", "Component", "Value")
	for _, record := range records {
		table.Append([]string{record.Entity.String(), record.Type, fmt.Sprintf("%+v", record.Value)})
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total Records %d", len(records)), ""})
	table.Render()

	s.printf("\n[%s]\n%s", scene, tableBuffer.String())
}

// DisplayInspection prints the classification of each inspected trace.
func (s *SimpleUI) DisplayInspection(rows []m.Inspection) error {
	var tableBuffer bytes.Buffer

	err := renderInspection(&tableBuffer, rows)
	s.printf("\n%s", tableBuffer.String())

	return err
}

func renderInspection(buffer *bytes.Buffer, rows []m.Inspection) error {
	failed := 0

	table := newTable(buffer, "Trace", "Kind", "Component", "Value")
	for _, row := range rows {
		if row.Err != nil {
			failed++
			table.Append([]string{row.Trace, "error", "-", row.Err.Error()})

			continue
		}

		component := "-"
		if row.Component >= 0 {
			component = fmt.Sprintf("%d", row.Component)
		}

		table.Append([]string{row.Trace, row.Kind, component, row.Value})
	}

	table.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d trace(s) failed to resolve", failed, len(rows))
	}

	return nil
}

// DisplayTypes prints the registered component types.
func (s *SimpleUI) DisplayTypes(types []m.TypeInfo) error {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, "Name", "Kind", "Fields")
	for _, info := range types {
		table.Append([]string{info.Name, info.Kind, strings.Join(info.Fields, ", ")})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayNotice prints a free-form message.
func (s *SimpleUI) DisplayNotice(message string) {
	s.printf("%s\n", message)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func newTable(buffer *bytes.Buffer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(buffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}
