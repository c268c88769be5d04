package controller

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/ecslua/internal/model"
)

func update(t *testing.T, model runModel, msg tea.Msg) (runModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	updated, ok := next.(runModel)
	require.True(t, ok, "Update returned %T", next)

	return updated, cmd
}

func TestRunModel_TracksPhases(t *testing.T) {
	model := newRunModel(120)

	model, _ = update(t, model, runInfoMsg{scenes: 2, phases: 2, threads: 1})
	assert.Equal(t, 0.0, model.percent())

	model, _ = update(t, model, phaseMsg{report: m.PhaseReport{Scene: "a", Phase: 0, Records: 3}})
	model, _ = update(t, model, phaseMsg{report: m.PhaseReport{
		Scene:    "b",
		Phase:    0,
		Records:  2,
		Failures: []m.RecordFailure{{Entity: m.Entity{Index: 1}, Err: errors.New("boom")}},
	}})

	assert.Equal(t, 2, model.completed)
	assert.Equal(t, 5, model.records)
	assert.Equal(t, 1, model.failed)
	assert.InDelta(t, 0.5, model.percent(), 1e-9)
	assert.Equal(t, []string{"[b] phase 0 1v0: boom"}, model.failures)

	model, _ = update(t, model, worldMsg{scene: "a", records: 3})
	model, _ = update(t, model, noticeMsg{text: "watching"})

	view := model.View()
	for _, want := range []string{"ecslua", "Records:", "[b] phase 0 1v0: boom", "a: 3 record(s)", "watching"} {
		assert.Contains(t, view, want)
	}
}

func TestRunModel_KeepsRecentFailures(t *testing.T) {
	model := newRunModel(80)

	for i := 0; i < maxFailureLines+3; i++ {
		model, _ = update(t, model, phaseMsg{report: m.PhaseReport{
			Scene:    "s",
			Phase:    i,
			Failures: []m.RecordFailure{{Entity: m.Entity{}, Err: fmt.Errorf("err %d", i)}},
		}})
	}

	require.Len(t, model.failures, maxFailureLines)
	assert.Contains(t, model.failures[maxFailureLines-1], fmt.Sprintf("err %d", maxFailureLines+2))
	assert.Equal(t, maxFailureLines+3, model.failed)
}

func TestRunModel_QuitMessages(t *testing.T) {
	model := newRunModel(80)

	model, cmd := update(t, model, finishedMsg{})
	assert.True(t, model.finished)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, model.interrupts)
	require.NotNil(t, cmd)

	model, cmd = update(t, model, tea.WindowSizeMsg{Width: 42, Height: 10})
	assert.Equal(t, 42, model.width)
	assert.Nil(t, cmd)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "anything", truncate("anything", 3), "tiny widths disable truncation")

	got := truncate("a rather long failure line", 12)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, lipgloss.Width(got), 12)
}
