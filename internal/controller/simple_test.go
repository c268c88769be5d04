package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	m "github.com/mouse-blink/ecslua/internal/model"
	"github.com/spf13/cobra"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayPhase(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ui.DisplayRunInfo(2, 3, 4)
	ui.DisplayPhase(m.PhaseReport{
		Scene:   "arena",
		Phase:   1,
		Records: 5,
		Skipped: 1,
		Failures: []m.RecordFailure{
			{Entity: m.Entity{Index: 2}, Err: errors.New("field not found")},
		},
	})

	assertContains(t, buf.String(),
		"Running 2 scene(s) for 3 phase(s) with 4 worker(s)",
		"[arena] phase 1: 5 record(s), 1 skipped, 1 failed",
		"2v0: field not found",
	)
}

func TestSimpleUI_DisplayWorld(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ui.DisplayWorld("arena", []m.RecordDump{
		{Entity: m.Entity{Index: 0}, Type: "Name", Value: m.Name{Value: "player"}},
		{Entity: m.Entity{Index: 1, Generation: 3}, Type: "Score", Value: m.Score(9)},
	})

	assertContains(t, buf.String(), "[arena]", "0v0", "1v3", "Name", "player", "TOTAL RECORDS 2")

	buf.Reset()
	ui.DisplayWorld("void", nil)

	assertContains(t, buf.String(), "[void] world is empty")
}

func TestSimpleUI_DisplayInspection(t *testing.T) {
	ui, buf := newTestSimpleUI()

	rows := []m.Inspection{
		{Trace: "Transform.translation.x", Kind: "number", Component: 0, Value: "1"},
		{Trace: "Transform", Kind: "component", Component: -1, Value: "{}"},
	}

	if err := ui.DisplayInspection(rows); err != nil {
		t.Fatalf("DisplayInspection() error = %v", err)
	}

	assertContains(t, buf.String(), "Transform.translation.x", "number", "component")
}

func TestSimpleUI_DisplayInspection_Error(t *testing.T) {
	ui, buf := newTestSimpleUI()

	rows := []m.Inspection{
		{Trace: "Transform.nope", Err: errors.New("invalid path")},
		{Trace: "Name.value", Kind: "string", Component: 0, Value: `"a"`},
	}

	err := ui.DisplayInspection(rows)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 trace(s) failed") {
		t.Fatalf("DisplayInspection() error = %v, want failure count", err)
	}

	assertContains(t, buf.String(), "Transform.nope", "invalid path")
}

func TestSimpleUI_DisplayTypes(t *testing.T) {
	ui, buf := newTestSimpleUI()

	err := ui.DisplayTypes([]m.TypeInfo{
		{Name: "Health", Kind: "struct", Fields: []string{"current", "max"}},
		{Name: "Score", Kind: "int64"},
	})
	if err != nil {
		t.Fatalf("DisplayTypes() error = %v", err)
	}

	assertContains(t, buf.String(), "Health", "current, max", "Score", "int64")
}

func TestSimpleUI_DisplayNotice(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.Start(WithConsoleMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayNotice("script reloaded")
	ui.Close()

	assertContains(t, buf.String(), "script reloaded\n")
}
