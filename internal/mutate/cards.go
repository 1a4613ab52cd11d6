package mutate

import (
	"strings"

	"kanban-cli/internal/model"
)

// knownCategory keeps the card->category reference valid: unknown ids collapse to "".
func knownCategory(b *model.Board, categoryID string) string {
	categoryID = strings.TrimSpace(categoryID)
	if _, ok := b.FindCategory(categoryID); !ok {
		return ""
	}
	return categoryID
}

// AddCard appends a card to the end of a list.
func AddCard(b *model.Board, newID IDFunc, listID, title, categoryID string) (model.Card, error) {
	l, _, ok := b.FindList(listID)
	if !ok {
		return model.Card{}, NotFoundError{Kind: "list", ID: listID}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Card{}, errBlank("card title")
	}
	c := model.Card{ID: newID("card"), Title: title, CategoryID: knownCategory(b, categoryID)}
	l.Cards = append(l.Cards, c)
	return c, nil
}

type EditCardResult struct {
	Card    model.Card
	ListID  string
	Changed bool
}

// EditCard replaces a card's title and category, wherever the card lives.
func EditCard(b *model.Board, cardID, title, categoryID string) (EditCardResult, error) {
	c, l, _, ok := b.FindCard(cardID)
	if !ok {
		return EditCardResult{}, NotFoundError{Kind: "card", ID: cardID}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return EditCardResult{}, errBlank("card title")
	}
	categoryID = knownCategory(b, categoryID)
	changed := c.Title != title || c.CategoryID != categoryID
	c.Title = title
	c.CategoryID = categoryID
	return EditCardResult{Card: *c, ListID: l.ID, Changed: changed}, nil
}

type RemoveCardResult struct {
	Card   model.Card
	ListID string
}

// RemoveCard deletes a card from whichever list owns it.
func RemoveCard(b *model.Board, cardID string) (RemoveCardResult, error) {
	c, l, idx, ok := b.FindCard(cardID)
	if !ok {
		return RemoveCardResult{}, NotFoundError{Kind: "card", ID: cardID}
	}
	res := RemoveCardResult{Card: *c, ListID: l.ID}
	l.Cards = append(l.Cards[:idx:idx], l.Cards[idx+1:]...)
	return res, nil
}

// ClearCardCategory untags a card. Returns false when the card had no category.
func ClearCardCategory(b *model.Board, cardID string) (bool, error) {
	c, _, _, ok := b.FindCard(cardID)
	if !ok {
		return false, NotFoundError{Kind: "card", ID: cardID}
	}
	if c.CategoryID == "" {
		return false, nil
	}
	c.CategoryID = ""
	return true, nil
}
