package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminals can't switch fonts, but the board can fall back to ASCII affordances on fonts that
// render box-drawing and arrow glyphs poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set from KANBAN_TUI_GLYPHS, falling back to the
// configured name.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("KANBAN_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	if gs, ok := parseGlyphSet(v); ok {
		setGlyphs(gs)
	}
}

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

// glyphGrip marks the subject of an in-progress drag.
func glyphGrip() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "≡"
}

func glyphEditing() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "✎"
}
