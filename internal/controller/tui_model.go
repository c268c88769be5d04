package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxFailureLines = 6

// runModel renders progress across all scene phases.
type runModel struct {
	width      int
	progress   progress.Model
	scenes     int
	phases     int
	threads    int
	completed  int
	records    int
	failed     int
	failures   []string
	worlds     []string
	notices    []string
	finished   bool
	interrupts int
}

func newRunModel(width int) runModel {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)

	return runModel{width: width, progress: bar}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			rm.interrupts++
			return rm, tea.Quit
		}

	case runInfoMsg:
		rm.scenes = msg.scenes
		rm.phases = msg.phases
		rm.threads = msg.threads

	case phaseMsg:
		rm.completed++
		rm.records += msg.report.Records
		rm.failed += len(msg.report.Failures)

		for _, failure := range msg.report.Failures {
			rm.failures = append(rm.failures, fmt.Sprintf("[%s] phase %d %s: %v",
				msg.report.Scene, msg.report.Phase, failure.Entity, failure.Err))
		}

		if len(rm.failures) > maxFailureLines {
			rm.failures = rm.failures[len(rm.failures)-maxFailureLines:]
		}

	case worldMsg:
		rm.worlds = append(rm.worlds, fmt.Sprintf("%s: %d record(s)", msg.scene, msg.records))

	case noticeMsg:
		rm.notices = append(rm.notices, msg.text)

	case finishedMsg:
		rm.finished = true
		return rm, tea.Quit
	}

	return rm, nil
}

func (rm runModel) percent() float64 {
	total := rm.scenes * rm.phases
	if total == 0 {
		return 0
	}

	return float64(rm.completed) / float64(total)
}

func (rm runModel) View() string {
	accentColor := lipgloss.Color("6")

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)
	failureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Padding(0, 2)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 2)

	title := titleStyle.Render("ecslua")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Phases: %s / %s  •  Records: %s  •  Failures: %s  •  Workers: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.scenes*rm.phases)),
		accentStyle.Render(fmt.Sprintf("%d", rm.records)),
		accentStyle.Render(fmt.Sprintf("%d", rm.failed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.threads)),
	))

	sections := []string{
		title,
		summary,
		lipgloss.NewStyle().Padding(0, 2).Render(rm.progress.ViewAs(rm.percent())),
	}

	for _, failure := range rm.failures {
		sections = append(sections, failureStyle.Render(truncate(failure, rm.width-4)))
	}

	for _, line := range append(append([]string{}, rm.worlds...), rm.notices...) {
		sections = append(sections, mutedStyle.Render(truncate(line, rm.width-4)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func truncate(text string, width int) string {
	if width <= 3 || lipgloss.Width(text) <= width {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-3 {
		runes = runes[:len(runes)-1]
	}

	return strings.TrimRight(string(runes), " ") + "..."
}
