package session

import (
	"go.uber.org/zap"

	"kanban-cli/internal/drag"
	"kanban-cli/internal/filter"
	"kanban-cli/internal/viewsync"
)

// SetTextFilter records keystroke input. The value commits after the debounce quiet period;
// each call restarts the period.
func (s *Session) SetTextFilter(v string) {
	s.text.Notify(v)
}

// PendingTextFilter returns text input still waiting for the quiet period.
func (s *Session) PendingTextFilter() (string, bool) {
	return s.text.Pending()
}

// FlushTextFilter commits pending text input immediately.
func (s *Session) FlushTextFilter() {
	v, ok := s.text.Take()
	if !ok {
		return
	}
	s.mu.Lock()
	s.criteria.Text = v
	s.mu.Unlock()
}

func (s *Session) commitText(v string) {
	s.mu.Lock()
	s.criteria.Text = v
	s.mu.Unlock()
	s.log.Debug("text filter applied", zap.String("text", v))
	if s.onChange != nil {
		s.onChange()
	}
}

// SetCategoryFilter restricts cards to one category id. "" or "all" clears it.
func (s *Session) SetCategoryFilter(v string) {
	if v == filter.All {
		v = ""
	}
	s.mu.Lock()
	s.criteria.Category = v
	s.mu.Unlock()
}

// SetProjectFilter restricts the board to the list with this title. "" or "all" clears it.
func (s *Session) SetProjectFilter(v string) {
	if v == filter.All {
		v = ""
	}
	s.mu.Lock()
	s.criteria.Project = v
	s.mu.Unlock()
}

// BeginRename puts a list into rename mode.
func (s *Session) BeginRename(listID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, ok := s.board.FindList(listID); !ok {
		return false
	}
	s.ui.EditingListID = listID
	return true
}

func (s *Session) CancelRename() {
	s.mu.Lock()
	s.ui.EditingListID = ""
	s.mu.Unlock()
}

// OpenCardForm opens the add-card form of a list. Card edit mode closes.
func (s *Session) OpenCardForm(listID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, ok := s.board.FindList(listID); !ok {
		return false
	}
	s.ui.AddingCardListID = listID
	s.ui.EditingCardID = ""
	return true
}

func (s *Session) CloseCardForm() {
	s.mu.Lock()
	s.ui.AddingCardListID = ""
	s.mu.Unlock()
}

// BeginEditCard puts a card into edit mode. The add-card form closes.
func (s *Session) BeginEditCard(cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, _, ok := s.board.FindCard(cardID); !ok {
		return false
	}
	s.ui.EditingCardID = cardID
	s.ui.AddingCardListID = ""
	return true
}

func (s *Session) CancelEditCard() {
	s.mu.Lock()
	s.ui.EditingCardID = ""
	s.mu.Unlock()
}

// BeginDrag starts dragging a card or list. fromControl reports that the pointer went down on
// an interactive control. Refusals are returned as drag errors and change nothing.
func (s *Session) BeginDrag(kind drag.Kind, id string, fromControl bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	editing := (kind == drag.KindList && s.ui.EditingListID == id) ||
		(kind == drag.KindCard && s.ui.EditingCardID == id)
	err := s.drag.Begin(&s.board, drag.Start{
		Kind:        kind,
		ID:          id,
		FromControl: fromControl,
		Editing:     editing,
		Filtered:    filter.Active(s.criteria),
	})
	if err != nil {
		s.ignored("begin drag", err)
	}
	return err
}

// UpdateDragPosition feeds one pointer sample to the active drag. It reports whether the
// rendered order changed.
func (s *Session) UpdateDragPosition(h drag.Hover) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Move(h)
}

// CommitDrag drops the dragged subject and writes the final order through.
func (s *Session) CommitDrag() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishDragLocked("drop")
}

// CancelDrag ends the drag. The order the user last saw is still committed.
func (s *Session) CancelDrag() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishDragLocked("cancel")
}

// Dragging reports the active drag subject.
func (s *Session) Dragging() (drag.Kind, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind, id := s.drag.Subject()
	return kind, id, kind != 0
}

func (s *Session) finishDragLocked(how string) error {
	res, err := s.drag.Finish()
	if err != nil {
		s.ignored(how+" drag", err)
		return nil
	}
	payload := map[string]any{"how": how, "kind": res.Kind.String()}
	switch res.Kind {
	case drag.KindList:
		if !viewsync.WriteListOrder(&s.board, res.Order.Lists) {
			return nil
		}
		payload["order"] = res.Order.Lists
		return s.persistLocked(EventReorderLists, res.ID, payload)
	default:
		if !viewsync.WriteCardOrder(&s.board, res.Order.Cards) {
			return nil
		}
		if _, l, _, ok := s.board.FindCard(res.ID); ok {
			payload["listId"] = l.ID
		}
		return s.persistLocked(EventReorderCards, res.ID, payload)
	}
}

// CommitListOrder writes a list order produced by a view that tracked the drag itself. Unknown
// ids are dropped; lists the view did not show keep their slots.
func (s *Session) CommitListOrder(ids []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag.State() == drag.Dragging {
		s.ignored("commit list order", drag.ErrBusy)
		return false, nil
	}
	if !viewsync.WriteListOrder(&s.board, ids) {
		return false, nil
	}
	return true, s.persistLocked(EventReorderLists, "", map[string]any{"how": "view", "order": ids})
}

// CommitCardOrder writes a card membership produced by a view that tracked the drag itself.
// Cards the view left out are deleted, so the write is refused while any filter hides cards or
// lists.
func (s *Session) CommitCardOrder(lists []viewsync.ListCards) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filter.Active(s.criteria) || s.criteria.Project != "" {
		return false, ErrFilteredCommit
	}
	if s.drag.State() == drag.Dragging {
		s.ignored("commit card order", drag.ErrBusy)
		return false, nil
	}
	if !viewsync.WriteCardOrder(&s.board, lists) {
		return false, nil
	}
	return true, s.persistLocked(EventReorderCards, "", map[string]any{"how": "view"})
}
