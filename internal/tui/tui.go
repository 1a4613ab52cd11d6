package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/session"
)

type Options struct {
	// Glyphs names the glyph set ("unicode" or "ascii"). KANBAN_TUI_GLYPHS overrides it.
	Glyphs string
}

// Run shows the board full screen until the user quits. changes should be the notifier the
// session was opened with as OnChange, so debounced search results show up without a keypress.
func Run(sess *session.Session, changes *Notifier, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newBoardModel(sess, changes)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
