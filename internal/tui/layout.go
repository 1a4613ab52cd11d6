package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and, when height > 0, exactly
// height lines, so joined columns line up.
func normalizePane(s string, width, height int) string {
	width = max(width, 0)
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitWidth(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitWidth pads or truncates one line to width, marking truncation with an ellipsis.
func fitWidth(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch width {
		case 0:
			return ""
		case 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// wrapWithPrefix word-wraps plain text to maxW columns. The first line starts with
// firstPrefix, the rest with contPrefix; words wider than a line are hard-cut.
func wrapWithPrefix(s string, maxW int, firstPrefix, contPrefix string) []string {
	if maxW <= 0 {
		return []string{""}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{firstPrefix}
	}
	firstAvail := max(maxW-xansi.StringWidth(firstPrefix), 1)
	contAvail := max(maxW-xansi.StringWidth(contPrefix), 1)

	lines := make([]string, 0, 4)
	prefix, avail := firstPrefix, firstAvail
	cur, curW := "", 0
	flush := func() {
		lines = append(lines, prefix+cur)
		prefix, avail = contPrefix, contAvail
		cur, curW = "", 0
	}
	for _, word := range strings.Fields(s) {
		wordW := xansi.StringWidth(word)
		if cur != "" && curW+1+wordW <= avail {
			cur += " " + word
			curW += 1 + wordW
			continue
		}
		if cur != "" {
			flush()
		}
		for xansi.StringWidth(word) > avail {
			lines = append(lines, prefix+xansi.Cut(word, 0, avail))
			word = xansi.Cut(word, avail, xansi.StringWidth(word))
			prefix, avail = contPrefix, contAvail
		}
		cur, curW = word, xansi.StringWidth(word)
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, prefix+cur)
	}
	return lines
}
