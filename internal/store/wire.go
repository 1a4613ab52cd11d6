package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

// Result is the outcome of decoding a persisted snapshot: ValidSnapshot or InvalidSnapshot.
type Result interface {
	isResult()
}

// ValidSnapshot carries a structurally valid board. Repaired lists the fixes applied while
// decoding (coerced card sequences, cleared dangling category references, ...).
type ValidSnapshot struct {
	Board    model.Board
	Repaired []string
}

// InvalidSnapshot means the snapshot cannot be used; callers fall back to a default board.
type InvalidSnapshot struct {
	Reason error
}

func (ValidSnapshot) isResult()   {}
func (InvalidSnapshot) isResult() {}

type wireList struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Cards json.RawMessage `json:"cards"`
}

type wireBoard struct {
	Lists      []model.List     `json:"lists"`
	Categories []model.Category `json:"categories"`
}

func invalid(format string, args ...any) Result {
	return InvalidSnapshot{Reason: fmt.Errorf(format, args...)}
}

// Decode validates raw against the board schema:
//   - the document is an object with "lists" and "categories" arrays
//   - every list is an object; its "cards" become [] when absent or not an array,
//     and individual malformed cards are dropped
//   - categories without a string id and a non-blank string name are dropped
//   - a card needs string "id" and "title"; a non-string "categoryId" is blanked
//
// A board with no lists gets the default list; card references to unknown categories are cleared.
func Decode(raw []byte) Result {
	if isNullOrEmpty(raw) {
		return InvalidSnapshot{Reason: errors.New("empty snapshot")}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return invalid("snapshot is not an object: %w", err)
	}
	if top == nil {
		return InvalidSnapshot{Reason: errors.New("snapshot is null")}
	}
	if !isArray(top["lists"]) {
		return InvalidSnapshot{Reason: errors.New("lists is not an array")}
	}
	if !isArray(top["categories"]) {
		return InvalidSnapshot{Reason: errors.New("categories is not an array")}
	}

	var listsRaw []json.RawMessage
	if err := json.Unmarshal(top["lists"], &listsRaw); err != nil {
		return invalid("lists: %w", err)
	}
	var catsRaw []json.RawMessage
	if err := json.Unmarshal(top["categories"], &catsRaw); err != nil {
		return invalid("categories: %w", err)
	}

	var repaired []string
	b := model.Board{
		Lists:      make([]model.List, 0, len(listsRaw)),
		Categories: make([]model.Category, 0, len(catsRaw)),
	}

	for i, cr := range catsRaw {
		fields, ok := objectFields(cr)
		if !ok {
			repaired = append(repaired, fmt.Sprintf("categories[%d] dropped: not an object", i))
			continue
		}
		id, idOK := stringField(fields, "id")
		name, nameOK := stringField(fields, "name")
		if !idOK || !nameOK || id == "" || strings.TrimSpace(name) == "" {
			repaired = append(repaired, fmt.Sprintf("categories[%d] dropped: bad id or name", i))
			continue
		}
		b.Categories = append(b.Categories, model.Category{ID: id, Name: name})
	}

	for i, lr := range listsRaw {
		if !isObject(lr) {
			return invalid("lists[%d] is not an object", i)
		}
		var wl wireList
		if err := json.Unmarshal(lr, &wl); err != nil {
			return invalid("lists[%d]: %w", i, err)
		}
		l := model.List{ID: wl.ID, Title: wl.Title, Cards: []model.Card{}}
		if !isArray(wl.Cards) {
			repaired = append(repaired, fmt.Sprintf("lists[%d].cards coerced to []", i))
			b.Lists = append(b.Lists, l)
			continue
		}
		var cardsRaw []json.RawMessage
		_ = json.Unmarshal(wl.Cards, &cardsRaw)
		for j, cr := range cardsRaw {
			c, blanked, ok := decodeCard(cr)
			if !ok {
				repaired = append(repaired, fmt.Sprintf("lists[%d].cards[%d] dropped", i, j))
				continue
			}
			for _, f := range blanked {
				repaired = append(repaired, fmt.Sprintf("lists[%d].cards[%d].%s blanked", i, j, f))
			}
			l.Cards = append(l.Cards, c)
		}
		b.Lists = append(b.Lists, l)
	}

	if len(b.Lists) == 0 {
		b.Lists = append(b.Lists, model.List{ID: NewID("list"), Title: model.DefaultListTitle, Cards: []model.Card{}})
		repaired = append(repaired, "empty board: default list added")
	}

	for li := range b.Lists {
		for ci := range b.Lists[li].Cards {
			c := &b.Lists[li].Cards[ci]
			if c.CategoryID == "" {
				continue
			}
			if _, ok := b.FindCategory(c.CategoryID); !ok {
				repaired = append(repaired, fmt.Sprintf("card %s: dangling category %s cleared", c.ID, c.CategoryID))
				c.CategoryID = ""
			}
		}
	}

	return ValidSnapshot{Board: b, Repaired: repaired}
}

// Encode serialises lists, cards and categories only. Nil slices are written as [].
func Encode(b model.Board) ([]byte, error) {
	w := wireBoard{
		Lists:      make([]model.List, 0, len(b.Lists)),
		Categories: b.Categories,
	}
	if w.Categories == nil {
		w.Categories = []model.Category{}
	}
	for _, l := range b.Lists {
		if l.Cards == nil {
			l.Cards = []model.Card{}
		}
		w.Lists = append(w.Lists, l)
	}
	return json.Marshal(w)
}

// decodeCard reads one card entry. blanked names the optional fields reset to "".
func decodeCard(raw json.RawMessage) (model.Card, []string, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return model.Card{}, nil, false
	}
	id, idOK := stringField(fields, "id")
	title, titleOK := stringField(fields, "title")
	if !idOK || !titleOK {
		return model.Card{}, nil, false
	}
	var blanked []string
	cat, catOK := stringField(fields, "categoryId")
	if !catOK {
		blanked = append(blanked, "categoryId")
	}
	return model.Card{ID: id, Title: title, CategoryID: cat}, blanked, true
}

func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if !isObject(raw) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

// stringField reports a missing or null field as "" and anything but a JSON string as !ok.
func stringField(m map[string]json.RawMessage, key string) (string, bool) {
	raw, found := m[key]
	if !found {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNullOrEmpty(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}

func firstByte(b []byte) byte {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0
	}
	return s[0]
}

func isArray(b []byte) bool  { return firstByte(b) == '[' }
func isObject(b []byte) bool { return firstByte(b) == '{' }
