package adapter

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// LineReader reads interactive input one line at a time. Prompt returns
// io.EOF when the user ends the session.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// LinerReader is a LineReader with line editing and history.
type LinerReader struct {
	state *liner.State
}

// NewLinerReader puts the terminal into line-editing mode. Close restores it.
func NewLinerReader() *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &LinerReader{state: state}
}

// Prompt shows prompt and returns the entered line.
func (r *LinerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}

	return line, err
}

// AppendHistory records line for up-arrow recall.
func (r *LinerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close restores the terminal.
func (r *LinerReader) Close() error {
	return r.state.Close()
}
