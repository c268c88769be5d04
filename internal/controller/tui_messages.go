package controller

import m "github.com/mouse-blink/ecslua/internal/model"

// Message types.
type runInfoMsg struct {
	scenes  int
	phases  int
	threads int
}

type phaseMsg struct {
	report m.PhaseReport
}

type worldMsg struct {
	scene   string
	records int
}

type noticeMsg struct {
	text string
}

type finishedMsg struct{}
