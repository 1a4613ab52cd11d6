package session

import (
	"kanban-cli/internal/filter"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"
	"kanban-cli/internal/viewsync"
)

// Event types written to the board history.
const (
	EventListAdd        = "list.add"
	EventListRename     = "list.rename"
	EventListRemove     = "list.remove"
	EventCardAdd        = "card.add"
	EventCardEdit       = "card.edit"
	EventCardRemove     = "card.remove"
	EventCardUntag      = "card.untag"
	EventCategoryAdd    = "category.add"
	EventCategoryRemove = "category.remove"
	EventReorderLists   = "board.reorder.lists"
	EventReorderCards   = "board.reorder.cards"
	EventBoardReset     = "board.reset"
)

// AddList appends a list and returns its id. A blank title becomes "New List".
func (s *Session) AddList(title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abortDragLocked("list added")
	l := mutate.AddList(&s.board, s.newID, title)
	return l.ID, s.persistLocked(EventListAdd, l.ID, map[string]any{"title": l.Title})
}

// RenameList sets a list's title and ends rename mode for it. A project filter naming the old
// title follows the list to its new title. Returns false when nothing was renamed.
func (s *Session) RenameList(id, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ui.EditingListID == id {
		s.ui.EditingListID = ""
	}
	res, err := mutate.RenameList(&s.board, id, title)
	if err != nil {
		s.ignored("rename list", err)
		return false, nil
	}
	if s.criteria.Project != "" && s.criteria.Project == res.OldTitle {
		s.criteria.Project = res.NewTitle
	}
	if !res.Changed {
		return false, nil
	}
	return true, s.persistLocked(EventListRename, id, map[string]any{"from": res.OldTitle, "to": res.NewTitle})
}

// RemoveList deletes a list and its cards. UI state and the project filter pointing into the
// list are cleared.
func (s *Session) RemoveList(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, _, ok := s.board.FindList(id)
	if !ok {
		s.ignored("remove list", mutate.NotFoundError{Kind: "list", ID: id})
		return false, nil
	}
	if s.ui.EditingCardID != "" {
		for _, c := range l.Cards {
			if c.ID == s.ui.EditingCardID {
				s.ui.EditingCardID = ""
				break
			}
		}
	}

	s.abortDragLocked("list removed")
	res, err := mutate.RemoveList(&s.board, s.newID, id)
	if err != nil {
		s.ignored("remove list", err)
		return false, nil
	}
	if s.ui.EditingListID == id {
		s.ui.EditingListID = ""
	}
	if s.ui.AddingCardListID == id {
		s.ui.AddingCardListID = ""
	}
	if s.criteria.Project != "" && !s.board.HasListTitled(s.criteria.Project) {
		s.criteria.Project = ""
	}

	payload := map[string]any{"title": res.Removed.Title, "cards": len(res.Removed.Cards)}
	if res.Synthesized != nil {
		payload["synthesized"] = res.Synthesized.ID
	}
	return true, s.persistLocked(EventListRemove, id, payload)
}

// AddCard appends a card to a list and closes that list's add form. Returns "" when the list
// is missing or the title is blank.
func (s *Session) AddCard(listID, title, categoryID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, ok := s.board.FindList(listID); ok {
		s.abortDragLocked("card added")
	}
	c, err := mutate.AddCard(&s.board, s.newID, listID, title, categoryID)
	if err != nil {
		s.ignored("add card", err)
		return "", nil
	}
	if s.ui.AddingCardListID == listID {
		s.ui.AddingCardListID = ""
	}
	return c.ID, s.persistLocked(EventCardAdd, c.ID, map[string]any{
		"listId": listID, "title": c.Title, "categoryId": c.CategoryID,
	})
}

// EditCard replaces a card's title and category wherever it lives, and ends edit mode.
func (s *Session) EditCard(cardID, title, categoryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := mutate.EditCard(&s.board, cardID, title, categoryID)
	if err != nil {
		s.ignored("edit card", err)
		return false, nil
	}
	if s.ui.EditingCardID == cardID {
		s.ui.EditingCardID = ""
	}
	if !res.Changed {
		return false, nil
	}
	return true, s.persistLocked(EventCardEdit, cardID, map[string]any{
		"listId": res.ListID, "title": res.Card.Title, "categoryId": res.Card.CategoryID,
	})
}

func (s *Session) RemoveCard(cardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, _, ok := s.board.FindCard(cardID); ok {
		s.abortDragLocked("card removed")
	}
	res, err := mutate.RemoveCard(&s.board, cardID)
	if err != nil {
		s.ignored("remove card", err)
		return false, nil
	}
	if s.ui.EditingCardID == cardID {
		s.ui.EditingCardID = ""
	}
	return true, s.persistLocked(EventCardRemove, cardID, map[string]any{"listId": res.ListID, "title": res.Card.Title})
}

// ClearCardCategory removes the category tag from a card.
func (s *Session) ClearCardCategory(cardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := mutate.ClearCardCategory(&s.board, cardID)
	if err != nil {
		s.ignored("clear card category", err)
		return false, nil
	}
	if !changed {
		return false, nil
	}
	return true, s.persistLocked(EventCardUntag, cardID, nil)
}

// AddCategory returns the new category id, or "" for a blank or duplicate name.
func (s *Session) AddCategory(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := mutate.AddCategory(&s.board, s.newID, name)
	if err != nil {
		s.ignored("add category", err)
		return "", nil
	}
	return c.ID, s.persistLocked(EventCategoryAdd, c.ID, map[string]any{"name": c.Name})
}

// RemoveCategory deletes a category, untags its cards and resets a category filter naming it.
func (s *Session) RemoveCategory(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := mutate.RemoveCategory(&s.board, id)
	if err != nil {
		s.ignored("remove category", err)
		return false, nil
	}
	if s.criteria.Category == id {
		s.criteria.Category = ""
	}
	return true, s.persistLocked(EventCategoryRemove, id, map[string]any{
		"name": res.Category.Name, "clearedCards": res.ClearedCardIDs,
	})
}

// Reset replaces the board with a fresh default board and clears all transient state.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag.Abort()
	s.text.Take()
	s.board = model.DefaultBoard(s.newID)
	s.ui = viewsync.UIState{}
	s.criteria = filter.Criteria{}
	return s.persistLocked(EventBoardReset, s.board.Lists[0].ID, nil)
}

// Reload discards in-memory state and reloads the board from the backend.
func (s *Session) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abortDragLocked("reload")
	s.board = s.backend.Load()
	s.ui = viewsync.UIState{}
}

var _ Backend = (*store.Gateway)(nil)
