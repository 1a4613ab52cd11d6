package filter

import (
	"strings"

	"kanban-cli/internal/model"
)

// All is the sentinel select value meaning "no restriction".
const All = "all"

// Criteria are the three filter axes. They combine conjunctively.
type Criteria struct {
	// Text is matched as a case-insensitive substring.
	Text string
	// Category is an exact CategoryID, or "" / All.
	Category string
	// Project is a list title, or "".
	Project string
}

// Normalize trims the text axis and lower-cases it, and folds the "all" sentinels to "".
func (c Criteria) Normalize() Criteria {
	c.Text = strings.ToLower(strings.TrimSpace(c.Text))
	if c.Category == All {
		c.Category = ""
	}
	if c.Project == All {
		c.Project = ""
	}
	return c
}

// Active reports whether the text or category axis restricts cards. The project axis only
// selects a list and does not count.
func Active(c Criteria) bool {
	return strings.TrimSpace(c.Text) != "" || (c.Category != "" && c.Category != All)
}

type VisibleList struct {
	// List points into the evaluated board. Treat it as read-only.
	List *model.List
	// ListMatch is true when the list title itself matched the text axis.
	ListMatch bool
	Cards     []model.Card
}

type Visible struct {
	Lists []VisibleList
}

// CardIDs returns the visible card ids of a list, in order.
func (v VisibleList) CardIDs() []string {
	out := make([]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		out = append(out, c.ID)
	}
	return out
}

// Find returns the visible entry for a list id.
func (v Visible) Find(listID string) (VisibleList, bool) {
	for _, vl := range v.Lists {
		if vl.List.ID == listID {
			return vl, true
		}
	}
	return VisibleList{}, false
}

// Evaluate computes the visible subset of b, in board order. Nothing is cached between calls.
func Evaluate(b *model.Board, c Criteria) Visible {
	c = c.Normalize()
	active := Active(c)
	out := Visible{Lists: []VisibleList{}}
	if b == nil {
		return out
	}

	for i := range b.Lists {
		l := &b.Lists[i]
		if c.Project != "" && l.Title != c.Project {
			continue
		}
		listMatch := c.Text != "" && strings.Contains(strings.ToLower(l.Title), c.Text)

		cards := make([]model.Card, 0, len(l.Cards))
		for _, card := range l.Cards {
			if cardPasses(b, c, card, listMatch) {
				cards = append(cards, card)
			}
		}

		if active && !listMatch && len(cards) == 0 {
			continue
		}
		out.Lists = append(out.Lists, VisibleList{List: l, ListMatch: listMatch, Cards: cards})
	}
	return out
}

func cardPasses(b *model.Board, c Criteria, card model.Card, listMatch bool) bool {
	if c.Category != "" && card.CategoryID != c.Category {
		return false
	}
	if c.Text == "" || listMatch {
		return true
	}
	if strings.Contains(strings.ToLower(card.Title), c.Text) {
		return true
	}
	name := b.CategoryName(card.CategoryID)
	return name != "" && strings.Contains(strings.ToLower(name), c.Text)
}
