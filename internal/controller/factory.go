package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewUI picks the progress view for interactive terminals and plain tables
// for everything else, both writing to the command's output.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	out := cmd.OutOrStdout()
	if interactive {
		return NewTUI(out)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a file descriptor attached to a terminal.
func IsTTY(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}

	return false
}

// terminalWidth returns the width of w, or fallback when w is not a terminal.
func terminalWidth(w io.Writer, fallback int) int {
	file, ok := w.(*os.File)
	if !ok {
		return fallback
	}

	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}

	return width
}
