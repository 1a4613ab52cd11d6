package store

import (
	"testing"

	"kanban-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func sampleBoard() model.Board {
	return model.Board{
		Lists: []model.List{
			{ID: "list-a", Title: "To Do", Cards: []model.Card{
				{ID: "card-1", Title: "Buy milk", CategoryID: "cat-home"},
				{ID: "card-2", Title: "File taxes", CategoryID: ""},
			}},
			{ID: "list-b", Title: "Doing", Cards: []model.Card{}},
			{ID: "list-c", Title: "Done", Cards: []model.Card{
				{ID: "card-3", Title: "Ship it", CategoryID: "cat-work"},
			}},
		},
		Categories: []model.Category{
			{ID: "cat-home", Name: "Home"},
			{ID: "cat-work", Name: "Work"},
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	want := sampleBoard()
	raw, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, ok := Decode(raw).(ValidSnapshot)
	if !ok {
		t.Fatalf("expected valid snapshot, got %#v", Decode(raw))
	}
	if len(res.Repaired) != 0 {
		t.Fatalf("unexpected repairs: %v", res.Repaired)
	}
	if diff := cmp.Diff(want, res.Board); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_NilSlicesBecomeEmptyArrays(t *testing.T) {
	t.Parallel()

	raw, err := Encode(model.Board{Lists: []model.List{{ID: "l", Title: "x"}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"lists":[{"id":"l","title":"x","cards":[]}],"categories":[]}`
	if string(raw) != want {
		t.Fatalf("Encode:\n got: %s\nwant: %s", raw, want)
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "null", raw: "null"},
		{name: "not json", raw: "{lists:"},
		{name: "array root", raw: `[]`},
		{name: "missing lists", raw: `{"categories":[]}`},
		{name: "missing categories", raw: `{"lists":[]}`},
		{name: "lists not array", raw: `{"lists":{},"categories":[]}`},
		{name: "categories null", raw: `{"lists":[],"categories":null}`},
		{name: "list not object", raw: `{"lists":["x"],"categories":[]}`},
		{name: "list wrong field type", raw: `{"lists":[{"id":1}],"categories":[]}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := Decode([]byte(tt.raw)).(InvalidSnapshot); !ok {
				t.Fatalf("expected InvalidSnapshot for %q", tt.raw)
			}
		})
	}
}

func TestDecode_CoercesCards(t *testing.T) {
	t.Parallel()

	raw := `{"lists":[
		{"id":"l1","title":"A"},
		{"id":"l2","title":"B","cards":"oops"},
		{"id":"l3","title":"C","cards":[{"id":"c1","title":"ok","categoryId":""}, 7]}
	],"categories":[]}`
	res, ok := Decode([]byte(raw)).(ValidSnapshot)
	if !ok {
		t.Fatalf("expected valid snapshot")
	}
	want := []model.List{
		{ID: "l1", Title: "A", Cards: []model.Card{}},
		{ID: "l2", Title: "B", Cards: []model.Card{}},
		{ID: "l3", Title: "C", Cards: []model.Card{{ID: "c1", Title: "ok"}}},
	}
	if diff := cmp.Diff(want, res.Board.Lists); diff != "" {
		t.Fatalf("lists mismatch (-want +got):\n%s", diff)
	}
	if len(res.Repaired) != 3 {
		t.Fatalf("expected 3 repairs, got %v", res.Repaired)
	}
}

func TestDecode_BadCategoriesAreDropped(t *testing.T) {
	t.Parallel()

	raw := `{"lists":[{"id":"l1","title":"Doing","cards":[{"id":"c1","title":"t","categoryId":"g"}]}],
		"categories":[{"id":"g","name":5},3,{"id":"w","name":"Work"},{"id":7,"name":"Home"}]}`
	res, ok := Decode([]byte(raw)).(ValidSnapshot)
	if !ok {
		t.Fatalf("expected valid snapshot, got %#v", Decode([]byte(raw)))
	}
	if diff := cmp.Diff([]model.Category{{ID: "w", Name: "Work"}}, res.Board.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
	want := []model.List{{ID: "l1", Title: "Doing", Cards: []model.Card{{ID: "c1", Title: "t"}}}}
	if diff := cmp.Diff(want, res.Board.Lists); diff != "" {
		t.Fatalf("lists mismatch (-want +got):\n%s", diff)
	}
	// Three dropped categories plus the now-dangling reference on c1.
	if len(res.Repaired) != 4 {
		t.Fatalf("expected 4 repairs, got %v", res.Repaired)
	}
}

func TestDecode_WrongTypedCardFieldIsBlanked(t *testing.T) {
	t.Parallel()

	raw := `{"lists":[{"id":"l1","title":"A","cards":[
		{"id":"c1","title":"milk","categoryId":7},
		{"id":"c2","title":false}
	]}],"categories":[]}`
	res, ok := Decode([]byte(raw)).(ValidSnapshot)
	if !ok {
		t.Fatalf("expected valid snapshot")
	}
	if diff := cmp.Diff([]model.Card{{ID: "c1", Title: "milk"}}, res.Board.Lists[0].Cards); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}
	want := []string{"lists[0].cards[0].categoryId blanked", "lists[0].cards[1] dropped"}
	if diff := cmp.Diff(want, res.Repaired); diff != "" {
		t.Fatalf("repairs mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ClearsDanglingCategory(t *testing.T) {
	t.Parallel()

	raw := `{"lists":[{"id":"l1","title":"A","cards":[{"id":"c1","title":"t","categoryId":"cat-gone"}]}],"categories":[]}`
	res, ok := Decode([]byte(raw)).(ValidSnapshot)
	if !ok {
		t.Fatalf("expected valid snapshot")
	}
	if got := res.Board.Lists[0].Cards[0].CategoryID; got != "" {
		t.Fatalf("expected dangling category cleared, got %q", got)
	}
}

func TestDecode_EmptyListsGetsDefaultList(t *testing.T) {
	t.Parallel()

	res, ok := Decode([]byte(`{"lists":[],"categories":[]}`)).(ValidSnapshot)
	if !ok {
		t.Fatalf("expected valid snapshot")
	}
	if len(res.Board.Lists) != 1 || res.Board.Lists[0].Title != model.DefaultListTitle {
		t.Fatalf("expected one default list, got %#v", res.Board.Lists)
	}
}
