// Package tui is an interactive inspector for a running shell session. It
// degrades gracefully when no session is up: the app launcher and settings
// remain usable, the live tabs show a disconnected notice.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run starts the inspector. configPath may be empty for the default path.
func Run(configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(configPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
