package model

import (
	"strings"
	"time"
)

// DefaultListTitle is the title of the list synthesised for a fresh board and when the last
// list is deleted.
const DefaultListTitle = "To Do"

type Card struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// CategoryID is a weak reference to a Category; "" means uncategorised.
	CategoryID string `json:"categoryId"`
}

type List struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Board is the persisted root aggregate. It always holds at least one list.
type Board struct {
	Lists      []List     `json:"lists"`
	Categories []Category `json:"categories"`
}

// DefaultBoard returns a board with one empty "To Do" list and no categories.
// newID is used to mint the list id.
func DefaultBoard(newID func(prefix string) string) Board {
	return Board{
		Lists:      []List{{ID: newID("list"), Title: DefaultListTitle, Cards: []Card{}}},
		Categories: []Category{},
	}
}

func (b *Board) FindList(id string) (*List, int, bool) {
	if b == nil {
		return nil, -1, false
	}
	for i := range b.Lists {
		if b.Lists[i].ID == id {
			return &b.Lists[i], i, true
		}
	}
	return nil, -1, false
}

// FindCard looks a card up across all lists. Card ids are globally unique.
func (b *Board) FindCard(id string) (card *Card, list *List, idx int, ok bool) {
	if b == nil {
		return nil, nil, -1, false
	}
	for li := range b.Lists {
		l := &b.Lists[li]
		for ci := range l.Cards {
			if l.Cards[ci].ID == id {
				return &l.Cards[ci], l, ci, true
			}
		}
	}
	return nil, nil, -1, false
}

func (b *Board) FindCategory(id string) (*Category, bool) {
	if b == nil || id == "" {
		return nil, false
	}
	for i := range b.Categories {
		if b.Categories[i].ID == id {
			return &b.Categories[i], true
		}
	}
	return nil, false
}

// FindCategoryByName matches names case-insensitively.
func (b *Board) FindCategoryByName(name string) (*Category, bool) {
	if b == nil {
		return nil, false
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range b.Categories {
		if strings.ToLower(b.Categories[i].Name) == name {
			return &b.Categories[i], true
		}
	}
	return nil, false
}

// CategoryName resolves a category id to its name, or "" when unset or unknown.
func (b *Board) CategoryName(id string) string {
	if c, ok := b.FindCategory(id); ok {
		return c.Name
	}
	return ""
}

func (b *Board) HasListTitled(title string) bool {
	if b == nil {
		return false
	}
	for _, l := range b.Lists {
		if l.Title == title {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand boards across package boundaries without
// sharing card slices.
func (b Board) Clone() Board {
	out := Board{
		Lists:      make([]List, len(b.Lists)),
		Categories: append([]Category{}, b.Categories...),
	}
	for i, l := range b.Lists {
		out.Lists[i] = List{ID: l.ID, Title: l.Title, Cards: append([]Card{}, l.Cards...)}
	}
	return out
}

// Event is one entry of the board history. Payload round-trips as JSON.
type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
