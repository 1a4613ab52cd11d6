package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/drag"
	"kanban-cli/internal/model"
	"kanban-cli/internal/session"
	"kanban-cli/internal/viewsync"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeAddList
	modeRename
	modeAddCard
	modeEditCard
	modeAddCategory
	modeDrag
)

func (m mode) prompt() string {
	switch m {
	case modeSearch:
		return "Search: "
	case modeAddList:
		return "New list: "
	case modeRename:
		return "Rename list: "
	case modeAddCard:
		return "New card: "
	case modeEditCard:
		return "Edit card: "
	case modeAddCategory:
		return "New category: "
	default:
		return ""
	}
}

// boardChangedMsg reports a state change made off the UI goroutine (the debounced search
// committing).
type boardChangedMsg struct{}

type boardModel struct {
	sess    *session.Session
	changes *Notifier

	width  int
	height int

	snap   viewsync.Snapshot
	layout boardLayout
	sel    selection
	// row remembers the focused card index so focus stays in place when the card disappears.
	row int

	mode  mode
	input textinput.Model
	// target is the list or card an open form acts on.
	target string
	// formCategory is the category picked in the add and edit card forms.
	formCategory string
	status       string
	statusErr    bool
}

func newBoardModel(sess *session.Session, changes *Notifier) boardModel {
	m := boardModel{
		sess:    sess,
		changes: changes,
		width:   80,
		height:  24,
		row:     -1,
	}
	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 40
	m.refresh()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return m.changes.wait()
}

// refresh re-reads the snapshot, re-resolves the selection and recomputes the layout.
func (m *boardModel) refresh() {
	m.snap = m.sess.Snapshot()
	m.clampSelection()
	_, m.layout = renderBoard(m.snap, m.sel, m.width, m.boardHeight())
}

func (m *boardModel) clampSelection() {
	lists := m.snap.Lists
	if len(lists) == 0 {
		m.sel = selection{}
		m.row = -1
		return
	}
	m.sel.Col = min(max(m.sel.Col, 0), len(lists)-1)
	if m.sel.CardID == "" {
		m.row = -1
		return
	}
	for ci, l := range lists {
		if idx := slices.IndexFunc(l.Cards, func(c viewsync.CardView) bool { return c.ID == m.sel.CardID }); idx >= 0 {
			m.sel.Col = ci
			m.row = idx
			return
		}
	}
	cards := lists[m.sel.Col].Cards
	if len(cards) == 0 {
		m.sel.CardID = ""
		m.row = -1
		return
	}
	m.row = min(max(m.row, 0), len(cards)-1)
	m.sel.CardID = cards[m.row].ID
}

func (m boardModel) boardHeight() int {
	// title bar, filter bar, footer
	return max(m.height-3, 1)
}

func (m boardModel) focusedList() (viewsync.ListView, bool) {
	if m.sel.Col < 0 || m.sel.Col >= len(m.snap.Lists) {
		return viewsync.ListView{}, false
	}
	return m.snap.Lists[m.sel.Col], true
}

func (m boardModel) focusedCard() (viewsync.CardView, bool) {
	l, ok := m.focusedList()
	if !ok || m.sel.CardID == "" {
		return viewsync.CardView{}, false
	}
	for _, c := range l.Cards {
		if c.ID == m.sel.CardID {
			return c, true
		}
	}
	return viewsync.CardView{}, false
}

func (m *boardModel) moveFocus(dCol, dRow int) {
	if len(m.snap.Lists) == 0 {
		return
	}
	if dCol != 0 {
		m.sel.Col = min(max(m.sel.Col+dCol, 0), len(m.snap.Lists)-1)
		cards := m.snap.Lists[m.sel.Col].Cards
		switch {
		case m.row < 0 || len(cards) == 0:
			m.sel.CardID = ""
			m.row = -1
		default:
			m.row = min(m.row, len(cards)-1)
			m.sel.CardID = cards[m.row].ID
		}
		return
	}
	cards := m.snap.Lists[m.sel.Col].Cards
	m.row = min(max(m.row+dRow, -1), len(cards)-1)
	if m.row < 0 {
		m.sel.CardID = ""
		return
	}
	m.sel.CardID = cards[m.row].ID
}

func (m *boardModel) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *boardModel) setError(err error) {
	if err == nil {
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

// nextCategory cycles through "" and every category id.
func nextCategory(cats []model.Category, cur string) string {
	ids := make([]string, 0, len(cats)+1)
	ids = append(ids, "")
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return cycle(ids, cur)
}

func cycle(values []string, cur string) string {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

// dragHover builds the pointer sample that puts the dragged subject at slot in the given
// column, using the geometry of the last render.
func (m boardModel) dragHover(kind drag.Kind, id string, col, slot int) drag.Hover {
	if kind == drag.KindList {
		boxes := m.layout.columns
		return drag.Hover{Pointer: drag.SlotPointer(boxes, id, slot), Boxes: boxes}
	}
	listID := m.snap.Lists[col].ID
	boxes := m.layout.cardBoxes(listID)
	return drag.Hover{ListID: listID, Pointer: drag.SlotPointer(boxes, id, slot), Boxes: boxes}
}
