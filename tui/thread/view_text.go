package thread

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"skythread/domain"
	"skythread/tui/common"
)

// renderRichText turns a post's text plus span annotations into styled
// terminal output wrapped to width.
func renderRichText(text string, spans []domain.TextSpan, width int) string {
	var b strings.Builder
	for _, seg := range domain.RenderSegments(text, spans) {
		switch seg.Kind {
		case domain.SegmentLink:
			b.WriteString(common.LinkStyle.Render(seg.Text))
		case domain.SegmentMention:
			b.WriteString(common.MentionStyle.Render(seg.Text))
		default:
			b.WriteString(common.ContentStyle.Render(seg.Text))
		}
	}
	if width < 12 {
		width = 12
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// clampLinesToWidth hard-cuts any line wider than width, ANSI-aware.
func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}
