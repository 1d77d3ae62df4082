package tui

import (
	"fmt"
	"os"

	"codexmgr/config"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI on an existing config manager
func Run(cm *config.Manager) error {
	if !isTerminal() {
		return fmt.Errorf("codexmgr tui requires a terminal, use the subcommands for non-interactive mode")
	}

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	if os.Getenv("TERM") != "" {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(NewModel(cm), opts...).Run()
	return err
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
