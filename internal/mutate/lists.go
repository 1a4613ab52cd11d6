package mutate

import (
	"strings"

	"kanban-cli/internal/model"
)

// NewListTitle is used when a list is added without a title.
const NewListTitle = "New List"

// IDFunc mints an identifier for the given prefix ("list", "card", "cat").
type IDFunc func(prefix string) string

// AddList appends an empty list. It never fails.
func AddList(b *model.Board, newID IDFunc, title string) model.List {
	title = strings.TrimSpace(title)
	if title == "" {
		title = NewListTitle
	}
	l := model.List{ID: newID("list"), Title: title, Cards: []model.Card{}}
	b.Lists = append(b.Lists, l)
	return l
}

type RemoveListResult struct {
	Removed model.List
	// Synthesized is set when the removed list was the last one and a default list replaced it.
	Synthesized *model.List
}

// RemoveList deletes a list with all its cards. The board never ends up without lists.
func RemoveList(b *model.Board, newID IDFunc, id string) (RemoveListResult, error) {
	_, idx, ok := b.FindList(id)
	if !ok {
		return RemoveListResult{}, NotFoundError{Kind: "list", ID: id}
	}
	res := RemoveListResult{Removed: b.Lists[idx]}
	b.Lists = append(b.Lists[:idx:idx], b.Lists[idx+1:]...)
	if len(b.Lists) == 0 {
		l := model.List{ID: newID("list"), Title: model.DefaultListTitle, Cards: []model.Card{}}
		b.Lists = append(b.Lists, l)
		res.Synthesized = &l
	}
	return res, nil
}

type RenameListResult struct {
	OldTitle string
	NewTitle string
	Changed  bool
}

// RenameList sets a trimmed, non-blank title.
func RenameList(b *model.Board, id, title string) (RenameListResult, error) {
	l, _, ok := b.FindList(id)
	if !ok {
		return RenameListResult{}, NotFoundError{Kind: "list", ID: id}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return RenameListResult{}, errBlank("list title")
	}
	res := RenameListResult{OldTitle: l.Title, NewTitle: title, Changed: l.Title != title}
	l.Title = title
	return res, nil
}
