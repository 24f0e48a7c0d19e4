package tui

import (
	"dragboard-cli/internal/model"
	"dragboard-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store, b *model.Board) error {
	applyColorProfilePreference()
	m := newAppModel(s, b)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
