package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"kanban"},
			want: []string{"kanban"},
		},
		{
			name: "card id first token",
			in:   []string{"kanban", "card-abc123"},
			want: []string{"kanban", "cards", "show", "card-abc123"},
		},
		{
			name: "list id first token",
			in:   []string{"kanban", "list-abc123"},
			want: []string{"kanban", "lists", "show", "list-abc123"},
		},
		{
			name: "card id after value flag",
			in:   []string{"kanban", "--backend", "file", "card-abc123"},
			want: []string{"kanban", "--backend", "file", "cards", "show", "card-abc123"},
		},
		{
			name: "card id after equals flag",
			in:   []string{"kanban", "--config-dir=./tmp", "card-abc123"},
			want: []string{"kanban", "--config-dir=./tmp", "cards", "show", "card-abc123"},
		},
		{
			name: "card id after bool flag",
			in:   []string{"kanban", "--pretty", "card-abc123"},
			want: []string{"kanban", "--pretty", "cards", "show", "card-abc123"},
		},
		{
			name: "card id after double dash",
			in:   []string{"kanban", "--path", "b.db", "--", "card-abc123"},
			want: []string{"kanban", "--path", "b.db", "--", "cards", "show", "card-abc123"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"kanban", "card-"},
			want: []string{"kanban", "card-"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"kanban", "cards", "show", "card-abc123"},
			want: []string{"kanban", "cards", "show", "card-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"kanban", "wat"},
			want: []string{"kanban", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectLookupArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
