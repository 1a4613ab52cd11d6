package model

import "testing"

func fixedID(prefix string) string { return prefix + "-1" }

func TestDefaultBoard(t *testing.T) {
	t.Parallel()

	b := DefaultBoard(fixedID)
	if len(b.Lists) != 1 || b.Lists[0].Title != DefaultListTitle || b.Lists[0].ID != "list-1" {
		t.Fatalf("unexpected default board: %#v", b)
	}
	if b.Lists[0].Cards == nil || b.Categories == nil {
		t.Fatalf("expected non-nil empty slices so JSON encodes [] not null")
	}
}

func TestFindCard_AcrossLists(t *testing.T) {
	t.Parallel()

	b := Board{Lists: []List{
		{ID: "l1", Cards: []Card{{ID: "c1"}}},
		{ID: "l2", Cards: []Card{{ID: "c2"}, {ID: "c3"}}},
	}}
	c, l, idx, ok := b.FindCard("c3")
	if !ok || c.ID != "c3" || l.ID != "l2" || idx != 1 {
		t.Fatalf("FindCard(c3) = %v %v %d %v", c, l, idx, ok)
	}
	if _, _, _, ok := b.FindCard("nope"); ok {
		t.Fatalf("expected missing card")
	}
}

func TestFindCategoryByName_CaseInsensitive(t *testing.T) {
	t.Parallel()

	b := Board{Categories: []Category{{ID: "cat-1", Name: "Work"}}}
	if _, ok := b.FindCategoryByName("  wORK "); !ok {
		t.Fatalf("expected case-insensitive match")
	}
	if got := b.CategoryName("cat-1"); got != "Work" {
		t.Fatalf("CategoryName = %q", got)
	}
	if got := b.CategoryName(""); got != "" {
		t.Fatalf("CategoryName(\"\") = %q", got)
	}
}

func TestClone_DoesNotShareCards(t *testing.T) {
	t.Parallel()

	b := Board{Lists: []List{{ID: "l1", Cards: []Card{{ID: "c1", Title: "a"}}}}}
	cp := b.Clone()
	cp.Lists[0].Cards[0].Title = "changed"
	if b.Lists[0].Cards[0].Title != "a" {
		t.Fatalf("clone shares card storage")
	}
}
