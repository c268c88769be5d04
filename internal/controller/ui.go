// Package controller provides the user interfaces that report script phases,
// world contents and inspections.
package controller

import (
	m "github.com/mouse-blink/ecslua/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeConsole
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to batch run mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithConsoleMode sets the UI to interactive console mode.
func WithConsoleMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeConsole
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeRun}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how phases, worlds and inspections are shown.
// Implementations must be safe for concurrent use by scene workers.
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayRunInfo(scenes int, phases int, threads int)
	DisplayPhase(report m.PhaseReport)
	DisplayWorld(scene string, records []m.RecordDump)
	DisplayInspection(rows []m.Inspection) error
	DisplayTypes(types []m.TypeInfo) error
	DisplayNotice(message string)
}
