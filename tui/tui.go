package tui

import (
	"gostays/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/serr"
)

// Run starts the terminal search over sess and blocks until the user quits.
func Run(sess *models.SearchSession, search SearchFunc) error {
	p := tea.NewProgram(New(sess, search), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return serr.Wrap(err, "terminal UI failed")
	}
	return nil
}
