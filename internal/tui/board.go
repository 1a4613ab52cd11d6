package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/drag"
	"kanban-cli/internal/viewsync"
)

const (
	columnGap     = 2
	minColumnW    = 14
	cardTopOffset = 2 // header line + blank line
)

// selection is the focused column and card. An empty CardID focuses the column header.
type selection struct {
	Col    int
	CardID string
}

// boardLayout is the geometry of the last render, in terminal cells. Column boxes run along x,
// card boxes along y; both feed the drag engine as candidate regions.
type boardLayout struct {
	columns []drag.Box
	cards   map[string][]drag.Box
}

func (l boardLayout) cardBoxes(listID string) []drag.Box {
	return l.cards[listID]
}

func columnWidth(n, width int) int {
	if n <= 0 {
		return 0
	}
	avail := max(width-columnGap*(n-1), n)
	return max(avail/n, minColumnW)
}

// renderBoard draws the visible lists as side-by-side columns and reports where every column
// and card landed.
func renderBoard(snap viewsync.Snapshot, sel selection, width, height int) (string, boardLayout) {
	width = max(width, 0)
	height = max(height, 0)
	layout := boardLayout{cards: map[string][]drag.Box{}}

	n := len(snap.Lists)
	if n == 0 {
		msg := styleMuted().Render("No lists match the current filters.")
		return normalizePane(msg, width, height), layout
	}
	colW := columnWidth(n, width)
	innerW := max(colW-2, 0)

	cardStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	cardSelected := cardStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	cardDragging := cardStyle.Inherit(styleDragging())

	renderCard := func(c viewsync.CardView, selected bool) []string {
		prefix := "  "
		switch {
		case snap.DragKind == drag.KindCard.String() && snap.DragID == c.ID:
			prefix = glyphGrip() + " "
		case c.Editing:
			prefix = glyphEditing() + " "
		}
		lines := wrapWithPrefix(c.Title, innerW, prefix, "  ")
		if c.CategoryName != "" {
			tag := glyphBullet() + " " + c.CategoryName
			lines = append(lines, "  "+styleCategory().Render(tag))
		}
		inner := normalizePane(strings.Join(lines, "\n"), innerW, 0)
		switch {
		case snap.DragID == c.ID:
			return strings.Split(cardDragging.Render(inner), "\n")
		case selected:
			return strings.Split(cardSelected.Render(inner), "\n")
		default:
			return strings.Split(cardStyle.Render(inner), "\n")
		}
	}

	rendered := make([]string, 0, n)
	for i, l := range snap.Lists {
		x := i * (colW + columnGap)
		layout.columns = append(layout.columns, drag.Box{ID: l.ID, Start: float64(x), Size: float64(colW)})

		head := fmt.Sprintf("%s (%d)", l.Title, len(l.Cards))
		if l.Editing {
			head = glyphEditing() + " " + head
		}
		hs := styleHeader(i == sel.Col && sel.CardID == "")
		if snap.DragKind == drag.KindList.String() && snap.DragID == l.ID {
			head = glyphGrip() + " " + head
			hs = styleDragging()
		}
		lines := []string{hs.Width(colW).Render(fitWidth(head, colW))}

		if len(l.Cards) == 0 {
			lines = append(lines, styleMuted().Render("(empty)"))
		} else {
			lines = append(lines, "")
		}
		boxes := make([]drag.Box, 0, len(l.Cards))
		for ci, c := range l.Cards {
			card := renderCard(c, i == sel.Col && sel.CardID == c.ID)
			boxes = append(boxes, drag.Box{ID: c.ID, Start: float64(len(lines)), Size: float64(len(card))})
			lines = append(lines, card...)
			if ci < len(l.Cards)-1 {
				sep := " " + strings.Repeat(glyphHRule(), max(colW-2, 0)) + " "
				lines = append(lines, styleMuted().Render(sep))
			}
		}
		layout.cards[l.ID] = boxes
		if l.AddingCard {
			lines = append(lines, "", styleMuted().Render("  + new card"))
		}
		rendered = append(rendered, normalizePane(strings.Join(lines, "\n"), colW, height))
	}

	out := rendered[0]
	gap := strings.Repeat(" ", columnGap)
	for _, col := range rendered[1:] {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, gap, col)
	}
	return normalizePane(out, width, height), layout
}

// filterBar summarises the active filters as chips.
func filterBar(snap viewsync.Snapshot, pendingText string, pending bool) string {
	chips := make([]string, 0, 3)
	text := snap.Filters.Text
	if pending {
		text = pendingText
	}
	if text != "" {
		label := "search: " + text
		if pending {
			label += " …"
		}
		chips = append(chips, styleChip().Render(label))
	}
	if snap.Filters.Category != "" {
		chips = append(chips, styleChip().Render("category: "+categoryLabel(snap.Categories, snap.Filters.Category)))
	}
	if snap.Filters.Project != "" {
		chips = append(chips, styleChip().Render("project: "+snap.Filters.Project))
	}
	if len(chips) == 0 {
		return styleMuted().Render("no filters")
	}
	return strings.Join(chips, " ")
}
