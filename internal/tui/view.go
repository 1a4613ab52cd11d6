package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpNormal = "←↓↑→ move · a card · n list · e edit · r rename · t tag · x untag · d/D delete · C category · / search · c/p filter · space drag · q quit"

func (m boardModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("kanban")
	pendingText, pending := m.sess.PendingTextFilter()
	top := normalizePane(title+"  "+filterBar(m.snap, pendingText, pending), m.width, 1)

	board, _ := renderBoard(m.snap, m.sel, m.width, m.boardHeight())

	return strings.Join([]string{top, "", board, m.footer()}, "\n")
}

func (m boardModel) footer() string {
	var line string
	switch {
	case m.mode == modeDrag:
		line = styleDragging().Render(" " + glyphGrip() + " " + m.status + " ")
	case m.mode != modeNormal:
		line = m.input.View()
		if m.mode == modeAddCard || m.mode == modeEditCard {
			label := "none"
			if m.formCategory != "" {
				label = categoryLabel(m.snap.Categories, m.formCategory)
			}
			line += "  " + styleMuted().Render("category: "+label+" (tab)")
		}
	case m.status != "" && m.statusErr:
		line = styleError().Render(m.status)
	case m.status != "":
		line = m.status
	default:
		help := helpNormal
		if glyphs() == glyphSetASCII {
			help = strings.NewReplacer("←↓↑→", "hjkl", "·", "|").Replace(help)
		}
		line = styleMuted().Render(help)
	}
	return normalizePane(line, m.width, 1)
}
