package drag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kanban-cli/internal/filter"
	"kanban-cli/internal/model"
	"kanban-cli/internal/viewsync"
)

func testBoard() *model.Board {
	return &model.Board{
		Lists: []model.List{
			{ID: "todo", Title: "To Do", Cards: []model.Card{
				{ID: "c1", Title: "milk", CategoryID: "home"},
				{ID: "c2", Title: "report", CategoryID: "work"},
				{ID: "c3", Title: "eggs", CategoryID: "home"},
			}},
			{ID: "doing", Title: "Doing", Cards: []model.Card{
				{ID: "c4", Title: "taxes", CategoryID: "work"},
			}},
			{ID: "done", Title: "Done", Cards: []model.Card{}},
		},
		Categories: []model.Category{{ID: "home", Name: "Home"}, {ID: "work", Name: "Work"}},
	}
}

// boxes lays out ids 100 units apart, so midpoints fall on 100, 200, 300...
func boxes(ids ...string) []Box {
	out := make([]Box, 0, len(ids))
	for i, id := range ids {
		out = append(out, Box{ID: id, Start: float64(i+1)*100 - 50, Size: 100})
	}
	return out
}

func cardOrder(o Order) map[string][]string {
	out := map[string][]string{}
	for _, lc := range o.Cards {
		out[lc.ListID] = lc.CardIDs
	}
	return out
}

func TestInsertionAnchor(t *testing.T) {
	t.Parallel()
	bs := boxes("a", "b", "c")
	tests := []struct {
		name    string
		pointer float64
		exclude string
		want    string
		ok      bool
	}{
		{name: "between first and second", pointer: 150, want: "b", ok: true},
		{name: "past the last", pointer: 350, ok: false},
		{name: "before the first", pointer: 10, want: "a", ok: true},
		{name: "excluded candidate is skipped", pointer: 150, exclude: "b", want: "c", ok: true},
		{name: "exact midpoint is not beyond", pointer: 200, want: "c", ok: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := InsertionAnchor(tt.pointer, bs, tt.exclude)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("InsertionAnchor(%v) = %q,%v want %q,%v", tt.pointer, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBegin_Refusals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		opts  Options
		start Start
		want  error
	}{
		{name: "interactive control", start: Start{Kind: KindCard, ID: "c1", FromControl: true}, want: ErrFromControl},
		{name: "editing", start: Start{Kind: KindList, ID: "todo", Editing: true}, want: ErrEditing},
		{name: "unknown card", start: Start{Kind: KindCard, ID: "nope"}, want: ErrUnknownSubject},
		{name: "unknown list", start: Start{Kind: KindList, ID: "nope"}, want: ErrUnknownSubject},
		{name: "no kind", start: Start{ID: "c1"}, want: ErrUnknownSubject},
		{name: "locked while filtered", opts: Options{LockCardsWhileFiltered: true}, start: Start{Kind: KindCard, ID: "c1", Filtered: true}, want: ErrFiltered},
		{name: "lists ignore the filter lock", opts: Options{LockCardsWhileFiltered: true}, start: Start{Kind: KindList, ID: "todo", Filtered: true}},
		{name: "cards allowed while filtered by default", start: Start{Kind: KindCard, ID: "c1", Filtered: true}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := New(tt.opts)
			err := e.Begin(testBoard(), tt.start)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Begin err = %v, want %v", err, tt.want)
			}
			wantState := Idle
			if tt.want == nil {
				wantState = Dragging
			}
			if e.State() != wantState {
				t.Fatalf("state = %v, want %v", e.State(), wantState)
			}
		})
	}
}

func TestBegin_OnlyFromIdle(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	b := testBoard()
	if err := e.Begin(b, Start{Kind: KindCard, ID: "c1"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := e.Begin(b, Start{Kind: KindList, ID: "todo"}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if k, id := e.Subject(); k != KindCard || id != "c1" {
		t.Fatalf("subject changed to %v %q", k, id)
	}
}

func TestMove_CardWithinList(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	b := testBoard()
	if err := e.Begin(b, Start{Kind: KindCard, ID: "c3"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	// Pointer above c1's midpoint: c3 goes first.
	if !e.Move(Hover{ListID: "todo", Pointer: 60, Boxes: boxes("c1", "c2", "c3")}) {
		t.Fatalf("expected order change")
	}
	if diff := cmp.Diff([]string{"c3", "c1", "c2"}, cardOrder(e.Order())["todo"]); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	// Same sample again changes nothing.
	if e.Move(Hover{ListID: "todo", Pointer: 40, Boxes: boxes("c3", "c1", "c2")}) {
		t.Fatalf("expected no change")
	}
	// The board is untouched until the drag is committed.
	if b.Lists[0].Cards[0].ID != "c1" {
		t.Fatalf("board mutated during drag")
	}
}

func TestMove_CardAcrossListsToEnd(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	if err := e.Begin(testBoard(), Start{Kind: KindCard, ID: "c1"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	e.Move(Hover{ListID: "doing", Pointer: 500, Boxes: boxes("c4")})
	got := cardOrder(e.Order())
	want := map[string][]string{"todo": {"c2", "c3"}, "doing": {"c4", "c1"}, "done": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	// Into an empty list.
	e.Move(Hover{ListID: "done", Pointer: 0})
	got = cardOrder(e.Order())
	want = map[string][]string{"todo": {"c2", "c3"}, "doing": {"c4"}, "done": {"c1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_UnknownListIgnored(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	if err := e.Begin(testBoard(), Start{Kind: KindCard, ID: "c1"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if e.Move(Hover{ListID: "ghost", Pointer: 0}) {
		t.Fatalf("expected no change for unknown list")
	}
}

// A card drag over a filtered view keeps the hidden cards in place and in the result.
func TestMove_FilteredViewKeepsHiddenCards(t *testing.T) {
	t.Parallel()
	b := testBoard()
	crit := filter.Criteria{Category: "home"}
	snap := viewsync.Read(b, viewsync.UIState{}, crit)
	if len(snap.Lists) != 1 || len(snap.Lists[0].Cards) != 2 {
		t.Fatalf("unexpected filtered view: %+v", snap.Lists)
	}

	e := New(Options{})
	if err := e.Begin(b, Start{Kind: KindCard, ID: "c3", Filtered: filter.Active(crit)}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	// Only c1 and c3 are rendered; drop c3 above c1.
	e.Move(Hover{ListID: "todo", Pointer: 10, Boxes: boxes("c1", "c3")})
	res, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	viewsync.WriteCardOrder(b, res.Order.Cards)

	want := map[string][]string{"todo": {"c3", "c1", "c2"}, "doing": {"c4"}, "done": {}}
	got := cardOrder(Order{Cards: snapshotCards(b)})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("committed order mismatch (-want +got):\n%s", diff)
	}
}

func snapshotCards(b *model.Board) []viewsync.ListCards {
	return viewsync.Read(b, viewsync.UIState{}, filter.Criteria{}).CardOrder()
}

func TestMove_List(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	b := testBoard()
	if err := e.Begin(b, Start{Kind: KindList, ID: "done"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !e.Move(Hover{Pointer: 150, Boxes: boxes("todo", "doing", "done")}) {
		t.Fatalf("expected order change")
	}
	if diff := cmp.Diff([]string{"todo", "done", "doing"}, e.Order().Lists); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	projected := e.Project(b)
	if projected.Lists[1].ID != "done" || b.Lists[1].ID != "doing" {
		t.Fatalf("Project should reorder a copy only")
	}
}

func TestMove_PastLastRenderedCandidate(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	if err := e.Begin(testBoard(), Start{Kind: KindList, ID: "todo"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	// "done" is not rendered, so it stays behind the dropped list.
	if !e.Move(Hover{Pointer: 500, Boxes: boxes("todo", "doing")}) {
		t.Fatalf("expected order change")
	}
	if diff := cmp.Diff([]string{"doing", "todo", "done"}, e.Order().Lists); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	// Only the subject rendered: nothing to drop relative to.
	if e.Move(Hover{Pointer: 500, Boxes: boxes("todo")}) {
		t.Fatalf("expected no change")
	}

	e = New(Options{})
	if err := e.Begin(testBoard(), Start{Kind: KindCard, ID: "c1"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if e.Move(Hover{ListID: "todo", Pointer: 500, Boxes: boxes("c1")}) {
		t.Fatalf("expected no change for a lone rendered card")
	}
	e.Move(Hover{ListID: "todo", Pointer: 500, Boxes: boxes("c1", "c2")})
	if diff := cmp.Diff([]string{"c2", "c1", "c3"}, cardOrder(e.Order())["todo"]); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFinishAndAbort(t *testing.T) {
	t.Parallel()
	e := New(Options{})
	if _, err := e.Finish(); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("expected ErrNotDragging, got %v", err)
	}
	b := testBoard()
	if err := e.Begin(b, Start{Kind: KindList, ID: "todo"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	// Cancelling without any move still yields the untouched order to commit.
	res, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if res.Kind != KindList || res.ID != "todo" {
		t.Fatalf("unexpected result %+v", res)
	}
	if diff := cmp.Diff([]string{"todo", "doing", "done"}, res.Order.Lists); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if e.State() != Idle {
		t.Fatalf("expected idle after finish")
	}

	if err := e.Begin(b, Start{Kind: KindCard, ID: "c1"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	e.Abort()
	if e.State() != Idle || len(e.Order().Lists) != 0 {
		t.Fatalf("expected idle and empty order after abort")
	}
}

func TestSlotPointer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		slot int
		want []string
	}{
		{slot: 0, want: []string{"c1", "c2", "c3"}},
		{slot: 1, want: []string{"c2", "c1", "c3"}},
		{slot: 2, want: []string{"c2", "c3", "c1"}},
		{slot: 9, want: []string{"c2", "c3", "c1"}},
	}
	for _, tt := range tests {
		e := New(Options{})
		b := testBoard()
		if err := e.Begin(b, Start{Kind: KindCard, ID: "c1"}); err != nil {
			t.Fatalf("Begin: %v", err)
		}
		stack := Stack([]string{"c1", "c2", "c3"})
		e.Move(Hover{ListID: "todo", Pointer: SlotPointer(stack, "c1", tt.slot), Boxes: stack})
		if diff := cmp.Diff(tt.want, cardOrder(e.Order())["todo"]); diff != "" {
			t.Fatalf("slot %d (-want +got):\n%s", tt.slot, diff)
		}
	}
}

func TestSlot(t *testing.T) {
	t.Parallel()
	stack := Stack([]string{"a", "b", "c"})
	if got := Slot(stack, "c"); got != 2 {
		t.Fatalf("Slot(c) = %d, want 2", got)
	}
	if got := Slot(stack, "zz"); got != -1 {
		t.Fatalf("Slot(zz) = %d, want -1", got)
	}
}
