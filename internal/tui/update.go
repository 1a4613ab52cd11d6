package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/drag"
)

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-20, 10)
		m.refresh()
		return m, nil

	case boardChangedMsg:
		m.refresh()
		return m, m.changes.wait()

	case tea.KeyMsg:
		switch m.mode {
		case modeNormal:
			return m.updateNormal(msg)
		case modeDrag:
			return m.updateDrag(msg)
		default:
			return m.updateInput(msg)
		}
	}
	return m, nil
}

func (m boardModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.moveFocus(-1, 0)
	case "right", "l":
		m.moveFocus(1, 0)
	case "up", "k":
		m.moveFocus(0, -1)
	case "down", "j":
		m.moveFocus(0, 1)

	case "n":
		return m.openInput(modeAddList, "", "")
	case "r":
		l, ok := m.focusedList()
		if !ok || !m.sess.BeginRename(l.ID) {
			return m, nil
		}
		return m.openInput(modeRename, l.ID, l.Title)
	case "D":
		if l, ok := m.focusedList(); ok {
			removed, err := m.sess.RemoveList(l.ID)
			m.setError(err)
			if removed && err == nil {
				m.setStatus(fmt.Sprintf("removed list %q", l.Title))
			}
		}
	case "a":
		l, ok := m.focusedList()
		if !ok || !m.sess.OpenCardForm(l.ID) {
			return m, nil
		}
		m.formCategory = m.snap.Filters.Category
		return m.openInput(modeAddCard, l.ID, "")
	case "e", "enter":
		c, ok := m.focusedCard()
		if !ok || !m.sess.BeginEditCard(c.ID) {
			return m, nil
		}
		m.formCategory = c.CategoryID
		return m.openInput(modeEditCard, c.ID, c.Title)
	case "d":
		if c, ok := m.focusedCard(); ok {
			_, err := m.sess.RemoveCard(c.ID)
			m.setError(err)
		}
	case "t":
		if c, ok := m.focusedCard(); ok {
			_, err := m.sess.EditCard(c.ID, c.Title, nextCategory(m.snap.Categories, c.CategoryID))
			m.setError(err)
		}
	case "x":
		if c, ok := m.focusedCard(); ok {
			_, err := m.sess.ClearCardCategory(c.ID)
			m.setError(err)
		}
	case "C":
		return m.openInput(modeAddCategory, "", "")
	case "K":
		if c, ok := m.focusedCard(); ok && c.CategoryID != "" {
			removed, err := m.sess.RemoveCategory(c.CategoryID)
			m.setError(err)
			if removed && err == nil {
				m.setStatus(fmt.Sprintf("removed category %q", c.CategoryName))
			}
		}

	case "/":
		return m.openInput(modeSearch, "", m.snap.Filters.Text)
	case "c":
		m.sess.SetCategoryFilter(nextCategory(m.snap.Categories, m.snap.Filters.Category))
	case "p":
		m.sess.SetProjectFilter(cycle(append([]string{""}, m.snap.Projects...), m.snap.Filters.Project))
	case "esc":
		m.sess.SetTextFilter("")
		m.sess.FlushTextFilter()
		m.sess.SetCategoryFilter("")
		m.sess.SetProjectFilter("")

	case " ":
		return m.beginDrag()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m boardModel) openInput(md mode, target, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.target = target
	m.input.Prompt = md.prompt()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	cmd := m.input.Focus()
	m.refresh()
	return m, cmd
}

func (m boardModel) closeInput() (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.target = ""
	m.input.Blur()
	m.input.SetValue("")
	m.refresh()
	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		switch m.mode {
		case modeSearch:
			m.sess.SetTextFilter("")
			m.sess.FlushTextFilter()
		case modeRename:
			m.sess.CancelRename()
		case modeAddCard:
			m.sess.CloseCardForm()
		case modeEditCard:
			m.sess.CancelEditCard()
		}
		return m.closeInput()
	case "enter":
		m.submit(m.input.Value())
		return m.closeInput()
	case "tab":
		if m.mode == modeAddCard || m.mode == modeEditCard {
			m.formCategory = nextCategory(m.snap.Categories, m.formCategory)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.sess.SetTextFilter(m.input.Value())
	}
	return m, cmd
}

func (m *boardModel) submit(value string) {
	switch m.mode {
	case modeSearch:
		m.sess.FlushTextFilter()
	case modeAddList:
		id, err := m.sess.AddList(value)
		m.setError(err)
		m.refresh()
		for i, l := range m.snap.Lists {
			if l.ID == id {
				m.sel = selection{Col: i}
			}
		}
	case modeRename:
		_, err := m.sess.RenameList(m.target, value)
		m.setError(err)
	case modeAddCard:
		id, err := m.sess.AddCard(m.target, value, m.formCategory)
		m.setError(err)
		if id == "" {
			m.sess.CloseCardForm()
			return
		}
		m.sel.CardID = id
	case modeEditCard:
		_, err := m.sess.EditCard(m.target, value, m.formCategory)
		m.setError(err)
		m.sess.CancelEditCard()
	case modeAddCategory:
		id, err := m.sess.AddCategory(value)
		m.setError(err)
		if id == "" && err == nil && strings.TrimSpace(value) != "" {
			m.setError(fmt.Errorf("category %q already exists", strings.TrimSpace(value)))
		}
	}
}

func (m boardModel) beginDrag() (tea.Model, tea.Cmd) {
	kind, id := drag.KindCard, m.sel.CardID
	if id == "" {
		l, ok := m.focusedList()
		if !ok {
			return m, nil
		}
		kind, id = drag.KindList, l.ID
	}
	if err := m.sess.BeginDrag(kind, id, false); err != nil {
		switch {
		case errors.Is(err, drag.ErrFiltered):
			m.setError(errors.New("cards can't be moved while a filter is active"))
		case errors.Is(err, drag.ErrEditing):
			m.setError(errors.New("finish editing before moving it"))
		default:
			m.setError(err)
		}
		return m, nil
	}
	m.mode = modeDrag
	m.setStatus(fmt.Sprintf("moving %s %s arrows move, enter drops, esc ends", kind, glyphArrow()))
	m.refresh()
	return m, nil
}

func (m boardModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind, id, ok := m.sess.Dragging()
	if !ok {
		// A structural change elsewhere aborted the drag.
		m.mode = modeNormal
		m.refresh()
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c":
		_ = m.sess.CancelDrag()
		return m, tea.Quit
	case "enter", " ":
		m.finishDrag(m.sess.CommitDrag())
		return m, nil
	case "esc":
		m.finishDrag(m.sess.CancelDrag())
		return m, nil
	case "left", "h":
		m.stepDrag(kind, id, -1, 0)
	case "right", "l":
		m.stepDrag(kind, id, 1, 0)
	case "up", "k":
		m.stepDrag(kind, id, 0, -1)
	case "down", "j":
		m.stepDrag(kind, id, 0, 1)
	}
	return m, nil
}

// stepDrag moves the dragged subject one slot by synthesising a pointer sample over the
// rendered geometry, the same way a mouse drag would.
func (m *boardModel) stepDrag(kind drag.Kind, id string, dCol, dRow int) {
	if kind == drag.KindList {
		if dCol == 0 {
			return
		}
		slot := drag.Slot(m.layout.columns, id)
		next := slot + dCol
		if slot < 0 || next < 0 || next >= len(m.layout.columns) {
			return
		}
		m.sess.UpdateDragPosition(m.dragHover(kind, id, 0, next))
		m.refresh()
		m.sel = selection{Col: next}
		return
	}

	col := -1
	for i, l := range m.snap.Lists {
		if drag.Slot(m.layout.cardBoxes(l.ID), id) >= 0 {
			col = i
		}
	}
	if col < 0 {
		return
	}
	slot := drag.Slot(m.layout.cardBoxes(m.snap.Lists[col].ID), id)
	switch {
	case dRow != 0:
		next := slot + dRow
		if next < 0 || next >= len(m.layout.cardBoxes(m.snap.Lists[col].ID)) {
			return
		}
		m.sess.UpdateDragPosition(m.dragHover(kind, id, col, next))
	default:
		target := col + dCol
		if target < 0 || target >= len(m.snap.Lists) {
			return
		}
		m.sess.UpdateDragPosition(m.dragHover(kind, id, target, slot))
	}
	m.sel.CardID = id
	m.refresh()
}

func (m *boardModel) finishDrag(err error) {
	m.mode = modeNormal
	m.status = ""
	m.setError(err)
	m.refresh()
}
