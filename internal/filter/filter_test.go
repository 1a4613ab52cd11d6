package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"kanban-cli/internal/model"
)

func testBoard() *model.Board {
	return &model.Board{
		Lists: []model.List{
			{ID: "l-todo", Title: "To Do", Cards: []model.Card{
				{ID: "c-milk", Title: "Buy milk", CategoryID: "cat-home"},
				{ID: "c-report", Title: "Quarterly report", CategoryID: "cat-work"},
			}},
			{ID: "l-doing", Title: "Doing", Cards: []model.Card{
				{ID: "c-fence", Title: "Paint fence", CategoryID: "cat-home"},
			}},
			{ID: "l-groceries", Title: "Groceries", Cards: []model.Card{
				{ID: "c-eggs", Title: "Eggs"},
				{ID: "c-bread", Title: "Bread", CategoryID: "cat-work"},
			}},
			{ID: "l-empty", Title: "Someday", Cards: []model.Card{}},
		},
		Categories: []model.Category{
			{ID: "cat-home", Name: "Home"},
			{ID: "cat-work", Name: "Work"},
		},
	}
}

type shape map[string][]string

func shapeOf(v Visible) shape {
	out := shape{}
	for _, vl := range v.Lists {
		out[vl.List.ID] = vl.CardIDs()
	}
	return out
}

func TestActive(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		c    Criteria
		want bool
	}{
		{name: "zero", c: Criteria{}, want: false},
		{name: "blank text", c: Criteria{Text: "   "}, want: false},
		{name: "text", c: Criteria{Text: "milk"}, want: true},
		{name: "category all", c: Criteria{Category: All}, want: false},
		{name: "category", c: Criteria{Category: "cat-home"}, want: true},
		{name: "project only", c: Criteria{Project: "Doing"}, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Active(tt.c); got != tt.want {
				t.Fatalf("Active(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		c    Criteria
		want shape
	}{
		{
			name: "no filter shows everything including empty lists",
			c:    Criteria{},
			want: shape{
				"l-todo":      {"c-milk", "c-report"},
				"l-doing":     {"c-fence"},
				"l-groceries": {"c-eggs", "c-bread"},
				"l-empty":     {},
			},
		},
		{
			name: "text matches card title case-insensitively",
			c:    Criteria{Text: "  MILK "},
			want: shape{"l-todo": {"c-milk"}},
		},
		{
			name: "text matches category name",
			c:    Criteria{Text: "work"},
			want: shape{"l-todo": {"c-report"}, "l-groceries": {"c-bread"}},
		},
		{
			name: "list title match exposes all its cards",
			c:    Criteria{Text: "grocer"},
			want: shape{"l-groceries": {"c-eggs", "c-bread"}},
		},
		{
			name: "list title match with no cards is still shown",
			c:    Criteria{Text: "someday"},
			want: shape{"l-empty": {}},
		},
		{
			name: "category filter",
			c:    Criteria{Category: "cat-home"},
			want: shape{"l-todo": {"c-milk"}, "l-doing": {"c-fence"}},
		},
		{
			name: "category all means no restriction",
			c:    Criteria{Category: All, Project: "Doing"},
			want: shape{"l-doing": {"c-fence"}},
		},
		{
			name: "list match still honours category",
			c:    Criteria{Text: "groceries", Category: "cat-work"},
			want: shape{"l-groceries": {"c-bread"}},
		},
		{
			name: "project restricts to one list",
			c:    Criteria{Project: "To Do"},
			want: shape{"l-todo": {"c-milk", "c-report"}},
		},
		{
			name: "project with no match hides everything",
			c:    Criteria{Project: "Nope"},
			want: shape{},
		},
		{
			name: "project and text conjunctive",
			c:    Criteria{Project: "Doing", Text: "milk"},
			want: shape{},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := shapeOf(Evaluate(testBoard(), tt.c))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Evaluate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluate_PreservesBoardOrder(t *testing.T) {
	t.Parallel()
	v := Evaluate(testBoard(), Criteria{Category: "cat-work"})
	var ids []string
	for _, vl := range v.Lists {
		ids = append(ids, vl.List.ID)
	}
	if diff := cmp.Diff([]string{"l-todo", "l-groceries"}, ids); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_ListMatchFlag(t *testing.T) {
	t.Parallel()
	v := Evaluate(testBoard(), Criteria{Text: "do"})
	todo, ok := v.Find("l-todo")
	if !ok || !todo.ListMatch {
		t.Fatalf("expected To Do to be a list-level match, got %+v", todo)
	}
	if len(todo.Cards) != 2 {
		t.Fatalf("list-level match should expose all cards, got %v", todo.CardIDs())
	}
	if _, ok := v.Find("l-groceries"); ok {
		t.Fatalf("Groceries should be hidden")
	}
}

func TestEvaluate_NilBoard(t *testing.T) {
	t.Parallel()
	if got := Evaluate(nil, Criteria{Text: "x"}); len(got.Lists) != 0 {
		t.Fatalf("expected no lists, got %d", len(got.Lists))
	}
}
