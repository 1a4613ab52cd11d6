package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
	"kanban-cli/internal/viewsync"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. A fixed style avoids WithAutoStyle, whose
	// terminal background query can block on some terminals.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// BoardMarkdown writes the snapshot as a markdown document: one section per list, one bullet
// per card with its category in backticks.
func BoardMarkdown(snap viewsync.Snapshot) string {
	var b strings.Builder
	b.WriteString("# Board\n")
	if f := snap.Filters; snap.FilterActive || f.Project != "" {
		b.WriteString("\n_Filtered:")
		if f.Text != "" {
			fmt.Fprintf(&b, " text %q", f.Text)
		}
		if f.Category != "" {
			fmt.Fprintf(&b, " category %s", categoryLabel(snap.Categories, f.Category))
		}
		if f.Project != "" {
			fmt.Fprintf(&b, " project %q", f.Project)
		}
		b.WriteString("_\n")
	}
	for _, l := range snap.Lists {
		fmt.Fprintf(&b, "\n## %s (%d)\n\n", l.Title, len(l.Cards))
		if len(l.Cards) == 0 {
			b.WriteString("_(empty)_\n")
			continue
		}
		for _, c := range l.Cards {
			if c.CategoryName != "" {
				fmt.Fprintf(&b, "- %s `%s`\n", c.Title, c.CategoryName)
				continue
			}
			fmt.Fprintf(&b, "- %s\n", c.Title)
		}
	}
	if len(snap.Categories) > 0 {
		b.WriteString("\n## Categories\n\n")
		for _, c := range snap.Categories {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}
	return b.String()
}

// RenderMarkdown renders md for a terminal of the given width. Rendering failures return md
// unchanged.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)
	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// markdownStyle follows the board's theme preference so exported markdown matches the TUI.
// KANBAN_TUI_MD_STYLE wins and also accepts glamour's "ascii" and "notty" styles.
func markdownStyle() string {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_TUI_MD_STYLE"))); v {
	case "light", "dark", "ascii", "notty":
		return v
	}
	if dark, ok := themeOverride(); ok {
		if dark {
			return "dark"
		}
		return "light"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func categoryLabel(cats []model.Category, id string) string {
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
