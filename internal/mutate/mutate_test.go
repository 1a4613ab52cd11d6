package mutate

import (
	"errors"
	"fmt"
	"testing"

	"kanban-cli/internal/model"
)

func seqIDs() IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newBoard() *model.Board {
	b := model.DefaultBoard(func(string) string { return "list-todo" })
	return &b
}

func TestAddList_DefaultsTitle(t *testing.T) {
	b := newBoard()
	l := AddList(b, seqIDs(), "   ")
	if l.Title != NewListTitle {
		t.Fatalf("expected %q, got %q", NewListTitle, l.Title)
	}
	if len(b.Lists) != 2 || b.Lists[1].ID != l.ID {
		t.Fatalf("expected list appended, got %#v", b.Lists)
	}
}

func TestRemoveList_NeverEmpties(t *testing.T) {
	b := newBoard()
	ids := seqIDs()
	AddList(b, ids, "Doing")
	AddList(b, ids, "Done")

	// Remove whatever is first, many more times than there are lists.
	for i := 0; i < 10; i++ {
		if _, err := RemoveList(b, ids, b.Lists[0].ID); err != nil {
			t.Fatalf("RemoveList: %v", err)
		}
		if len(b.Lists) < 1 {
			t.Fatalf("board has no lists after %d removals", i+1)
		}
	}
	if b.Lists[0].Title != model.DefaultListTitle {
		t.Fatalf("expected synthesized default list, got %q", b.Lists[0].Title)
	}
}

func TestRemoveList_RemovesCardsAndReportsSynthesis(t *testing.T) {
	b := newBoard()
	ids := seqIDs()
	if _, err := AddCard(b, ids, "list-todo", "a", ""); err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	res, err := RemoveList(b, ids, "list-todo")
	if err != nil {
		t.Fatalf("RemoveList: %v", err)
	}
	if len(res.Removed.Cards) != 1 {
		t.Fatalf("expected removed list to carry its card")
	}
	if res.Synthesized == nil || b.Lists[0].ID != res.Synthesized.ID || len(b.Lists[0].Cards) != 0 {
		t.Fatalf("expected fresh default list, got %#v", b.Lists)
	}
	if _, _, _, ok := b.FindCard(res.Removed.Cards[0].ID); ok {
		t.Fatalf("card survived list removal")
	}
}

func TestRenameList(t *testing.T) {
	b := newBoard()

	if _, err := RenameList(b, "list-todo", "  "); !IsNoop(err) {
		t.Fatalf("expected blank title to be a no-op, got %v", err)
	}
	if b.Lists[0].Title != model.DefaultListTitle {
		t.Fatalf("title changed on blank rename")
	}

	res, err := RenameList(b, "list-todo", "  Backlog ")
	if err != nil {
		t.Fatalf("RenameList: %v", err)
	}
	if !res.Changed || res.OldTitle != model.DefaultListTitle || res.NewTitle != "Backlog" {
		t.Fatalf("unexpected result %#v", res)
	}

	var nf NotFoundError
	if _, err := RenameList(b, "nope", "x"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestAddCard_Validation(t *testing.T) {
	b := newBoard()
	ids := seqIDs()

	if _, err := AddCard(b, ids, "missing", "t", ""); !IsNoop(err) {
		t.Fatalf("expected missing list no-op, got %v", err)
	}
	if _, err := AddCard(b, ids, "list-todo", " \t", ""); !IsNoop(err) {
		t.Fatalf("expected blank title no-op, got %v", err)
	}
	if len(b.Lists[0].Cards) != 0 {
		t.Fatalf("rejected adds must not change the board")
	}

	c, err := AddCard(b, ids, "list-todo", " Buy milk ", "cat-unknown")
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if c.Title != "Buy milk" || c.CategoryID != "" {
		t.Fatalf("unexpected card %#v", c)
	}
}

func TestEditCard_CrossList(t *testing.T) {
	b := newBoard()
	ids := seqIDs()
	doing := AddList(b, ids, "Doing")
	cat, _ := AddCategory(b, ids, "Work")
	c, _ := AddCard(b, ids, doing.ID, "old", "")

	res, err := EditCard(b, c.ID, "new", cat.ID)
	if err != nil {
		t.Fatalf("EditCard: %v", err)
	}
	if !res.Changed || res.ListID != doing.ID || res.Card.CategoryID != cat.ID {
		t.Fatalf("unexpected result %#v", res)
	}
	if _, err := EditCard(b, c.ID, "", ""); !IsNoop(err) {
		t.Fatalf("expected blank edit no-op, got %v", err)
	}
	got, _, _, _ := b.FindCard(c.ID)
	if got.Title != "new" || got.CategoryID != cat.ID {
		t.Fatalf("blank edit modified card: %#v", got)
	}
}

func TestRemoveCard(t *testing.T) {
	b := newBoard()
	ids := seqIDs()
	a, _ := AddCard(b, ids, "list-todo", "a", "")
	bb, _ := AddCard(b, ids, "list-todo", "b", "")

	if _, err := RemoveCard(b, "nope"); !IsNoop(err) {
		t.Fatalf("expected no-op, got %v", err)
	}
	res, err := RemoveCard(b, a.ID)
	if err != nil {
		t.Fatalf("RemoveCard: %v", err)
	}
	if res.ListID != "list-todo" || len(b.Lists[0].Cards) != 1 || b.Lists[0].Cards[0].ID != bb.ID {
		t.Fatalf("unexpected state after removal: %#v", b.Lists[0].Cards)
	}
}

func TestClearCardCategory(t *testing.T) {
	b := newBoard()
	ids := seqIDs()
	cat, _ := AddCategory(b, ids, "Home")
	c, _ := AddCard(b, ids, "list-todo", "a", cat.ID)

	changed, err := ClearCardCategory(b, c.ID)
	if err != nil || !changed {
		t.Fatalf("ClearCardCategory = %v, %v", changed, err)
	}
	changed, err = ClearCardCategory(b, c.ID)
	if err != nil || changed {
		t.Fatalf("second clear should be unchanged, got %v, %v", changed, err)
	}
}

func TestAddCategory_DuplicateCaseInsensitive(t *testing.T) {
	b := newBoard()
	ids := seqIDs()

	if _, err := AddCategory(b, ids, "Work"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	var dup DuplicateError
	if _, err := AddCategory(b, ids, "work"); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if _, err := AddCategory(b, ids, "  "); !IsNoop(err) {
		t.Fatalf("expected blank no-op, got %v", err)
	}
	if len(b.Categories) != 1 || b.Categories[0].Name != "Work" {
		t.Fatalf("expected exactly one category named Work, got %#v", b.Categories)
	}
}

func TestRemoveCategory_ClearsReferencesKeepsCards(t *testing.T) {
	b := newBoard()
	ids := seqIDs()
	work, _ := AddCategory(b, ids, "Work")
	home, _ := AddCategory(b, ids, "Home")
	doing := AddList(b, ids, "Doing")
	c1, _ := AddCard(b, ids, "list-todo", "a", work.ID)
	c2, _ := AddCard(b, ids, doing.ID, "b", work.ID)
	c3, _ := AddCard(b, ids, doing.ID, "c", home.ID)

	res, err := RemoveCategory(b, work.ID)
	if err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if len(res.ClearedCardIDs) != 2 {
		t.Fatalf("expected 2 cleared cards, got %v", res.ClearedCardIDs)
	}
	for _, id := range []string{c1.ID, c2.ID} {
		c, _, _, ok := b.FindCard(id)
		if !ok {
			t.Fatalf("card %s deleted by category removal", id)
		}
		if c.CategoryID != "" {
			t.Fatalf("card %s still references removed category", id)
		}
	}
	if c, _, _, _ := b.FindCard(c3.ID); c.CategoryID != home.ID {
		t.Fatalf("unrelated card lost its category")
	}
	if _, err := RemoveCategory(b, work.ID); !IsNoop(err) {
		t.Fatalf("expected second removal to be a no-op, got %v", err)
	}
}
