// Package viewsync is the contract between the board and whatever renders it: Read derives a
// render-ready snapshot, and the Write functions fold a rendered order back into the board.
package viewsync

import (
	"kanban-cli/internal/filter"
	"kanban-cli/internal/model"
)

// UIState is the transient, never persisted, selection state.
type UIState struct {
	EditingListID    string
	AddingCardListID string
	EditingCardID    string
}

type CardView struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Editing      bool   `json:"editing"`
}

type ListView struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Editing    bool       `json:"editing"`
	AddingCard bool       `json:"addingCard"`
	Cards      []CardView `json:"cards"`
}

type Filters struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Project  string `json:"project"`
}

type Snapshot struct {
	Lists      []ListView       `json:"lists"`
	Categories []model.Category `json:"categories"`
	// Projects are the list titles offered by the project selector, in board order.
	Projects        []string `json:"projects"`
	Filters         Filters  `json:"filters"`
	FilterActive    bool     `json:"filterActive"`
	CardDragEnabled bool     `json:"cardDragEnabled"`
	// DragKind and DragID name the subject of an in-progress drag.
	DragKind string `json:"dragKind,omitempty"`
	DragID   string `json:"dragId,omitempty"`
}

// Read derives the snapshot for b. Filters echo c as given so controls can be repopulated.
func Read(b *model.Board, ui UIState, c filter.Criteria) Snapshot {
	snap := Snapshot{
		Lists:           []ListView{},
		Categories:      []model.Category{},
		Projects:        []string{},
		Filters:         Filters{Text: c.Text, Category: c.Category, Project: c.Project},
		FilterActive:    filter.Active(c),
		CardDragEnabled: true,
	}
	if b == nil {
		return snap
	}
	snap.Categories = append(snap.Categories, b.Categories...)

	seen := map[string]bool{}
	for _, l := range b.Lists {
		if !seen[l.Title] {
			seen[l.Title] = true
			snap.Projects = append(snap.Projects, l.Title)
		}
	}

	for _, vl := range filter.Evaluate(b, c).Lists {
		lv := ListView{
			ID:         vl.List.ID,
			Title:      vl.List.Title,
			Editing:    ui.EditingListID == vl.List.ID,
			AddingCard: ui.AddingCardListID == vl.List.ID,
			Cards:      make([]CardView, 0, len(vl.Cards)),
		}
		for _, card := range vl.Cards {
			lv.Cards = append(lv.Cards, CardView{
				ID:           card.ID,
				Title:        card.Title,
				CategoryID:   card.CategoryID,
				CategoryName: b.CategoryName(card.CategoryID),
				Editing:      ui.EditingCardID == card.ID,
			})
		}
		snap.Lists = append(snap.Lists, lv)
	}
	return snap
}

// ListIDs returns the rendered list ids, in order.
func (s Snapshot) ListIDs() []string {
	out := make([]string, 0, len(s.Lists))
	for _, l := range s.Lists {
		out = append(out, l.ID)
	}
	return out
}

// CardOrder returns the rendered card membership, in order.
func (s Snapshot) CardOrder() []ListCards {
	out := make([]ListCards, 0, len(s.Lists))
	for _, l := range s.Lists {
		ids := make([]string, 0, len(l.Cards))
		for _, c := range l.Cards {
			ids = append(ids, c.ID)
		}
		out = append(out, ListCards{ListID: l.ID, CardIDs: ids})
	}
	return out
}

// WriteListOrder reorders b.Lists to follow ids. Unknown and repeated ids are skipped. Lists the
// view did not name keep their slots; the named lists fill the remaining slots in view order.
// It returns false, leaving b untouched, when no id matched.
func WriteListOrder(b *model.Board, ids []string) bool {
	known := make(map[string]model.List, len(b.Lists))
	for _, l := range b.Lists {
		known[l.ID] = l
	}
	named := make(map[string]bool, len(ids))
	order := make([]model.List, 0, len(ids))
	for _, id := range ids {
		l, ok := known[id]
		if !ok || named[id] {
			continue
		}
		named[id] = true
		order = append(order, l)
	}
	if len(order) == 0 {
		return false
	}

	next := make([]model.List, 0, len(b.Lists))
	for _, l := range b.Lists {
		if named[l.ID] {
			next = append(next, order[0])
			order = order[1:]
			continue
		}
		next = append(next, l)
	}
	b.Lists = next
	return true
}

// ListCards is one list's card sequence as rendered.
type ListCards struct {
	ListID  string   `json:"listId"`
	CardIDs []string `json:"cardIds"`
}

// WriteCardOrder rebuilds every list's cards from the rendered membership. Cards that were not
// rendered are dropped from the board, and unknown ids are skipped, so callers must pass the
// full ordering unless they mean to delete. An empty view is a no-op and returns false.
func WriteCardOrder(b *model.Board, lists []ListCards) bool {
	if len(lists) == 0 {
		return false
	}
	byID := map[string]model.Card{}
	for _, l := range b.Lists {
		for _, c := range l.Cards {
			byID[c.ID] = c
		}
	}
	for i := range b.Lists {
		b.Lists[i].Cards = []model.Card{}
	}
	for _, lc := range lists {
		l, _, ok := b.FindList(lc.ListID)
		if !ok {
			continue
		}
		for _, id := range lc.CardIDs {
			c, ok := byID[id]
			if !ok {
				continue
			}
			delete(byID, id)
			l.Cards = append(l.Cards, c)
		}
	}
	return true
}
