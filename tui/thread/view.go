package thread

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skythread/domain"
	"skythread/tui/common"
)

// View renders the thread: header, root post, the visible reply window,
// and the hint bar.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("skythread"))
	b.WriteString("\n")

	switch {
	case m.thread == nil && m.inFlight():
		b.WriteString(fmt.Sprintf("\n  %s loading thread...\n", m.spinner.View()))
		return b.String()

	case m.thread == nil && m.err != nil:
		b.WriteString("\n" + common.ErrorStyle.Render("  "+m.errorLine()) + "\n")
		if m.anon {
			b.WriteString(common.StatusBarStyle.Render("  running without login; set SKYTHREAD_IDENTIFIER to authenticate") + "\n")
		}
		if !m.terminal {
			b.WriteString(common.StatusBarStyle.Render("  will retry on the next refresh") + "\n")
		}
		return b.String()

	case m.thread == nil:
		return b.String()
	}

	if n := m.view.pendingNotifications; n > 0 {
		label := fmt.Sprintf("  ● %d new repl%s — n to dismiss", n, pluralY(n))
		b.WriteString(common.NoticeStyle.Render(label) + "\n")
	}

	rows := buildRows(m.thread, m.view)
	start, end := m.visibleWindow(len(rows))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.footer(rows))
	return b.String()
}

func (m Model) errorLine() string {
	switch {
	case errors.Is(m.err, domain.ErrNotFound):
		return "thread unavailable: the post no longer exists"
	case errors.Is(m.err, domain.ErrInvalidURL):
		return "configuration problem: " + m.err.Error()
	case errors.Is(m.err, domain.ErrMalformedResponse):
		return "the server sent an unexpected response"
	default:
		return "could not load thread: " + m.err.Error()
	}
}

func (m Model) renderRow(r row, selected bool) string {
	post, ok := m.thread.Post(r.uri)
	if !ok {
		return ""
	}

	width := m.cardWidth(r.depth)
	var card strings.Builder

	name := common.AuthorStyle.Render(post.Author.Name())
	handle := ""
	if post.Author.Handle != "" {
		handle = " " + common.HandleStyle.Render("@"+post.Author.Handle)
	}
	ts := common.TimestampStyle.Render(" · " + common.RelativeTime(post.CreatedAt, m.now()))
	card.WriteString(clampLinesToWidth(name+handle+ts, width) + "\n")

	text := post.Text
	if strings.TrimSpace(text) == "" && len(post.Media) > 0 {
		text = "(media post)"
	}
	card.WriteString(renderRichText(text, post.Spans, width))

	if line := mediaLine(post.Media); line != "" {
		card.WriteString("\n" + common.MediaStyle.Render(line))
	}
	if post.Quoted != nil {
		card.WriteString("\n" + renderQuote(post.Quoted, width-4))
	}
	if r.depth == 1 {
		if hidden := hiddenChildCount(m.thread, r.uri); hidden > 0 && !m.view.expandedNodes[r.uri] {
			card.WriteString("\n" + common.StatusBarStyle.Render(fmt.Sprintf("+%d repl%s · tab to expand", hidden, pluralY(hidden))))
		}
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.MarginLeft(r.depth * 2).Width(width + 4).Render(card.String())
}

// mediaLine summarizes image attachments; the arrangement is a pure
// function of count.
func mediaLine(media []domain.Media) string {
	switch n := len(media); {
	case n == 0:
		return ""
	case n == 1:
		if alt := strings.TrimSpace(media[0].Alt); alt != "" {
			return "🖼 image: " + alt
		}
		return "🖼 image"
	default:
		return fmt.Sprintf("🖼 %d images", n)
	}
}

func renderQuote(q *domain.QuotedPost, width int) string {
	if width < 12 {
		width = 12
	}
	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render(q.Author.Name()))
	if q.Author.Handle != "" {
		b.WriteString(" " + common.HandleStyle.Render("@"+q.Author.Handle))
	}
	b.WriteString("\n" + lipgloss.NewStyle().Width(width).Render(q.Text))
	if line := mediaLine(q.Media); line != "" {
		b.WriteString("\n" + line)
	}
	return common.QuoteStyle.Render(b.String())
}

func (m Model) footer(rows []row) string {
	total := len(m.thread.Replies)
	shown := m.view.visibleReplyCount
	if shown > total {
		shown = total
	}

	parts := []string{fmt.Sprintf("%d of %d replies", shown, total)}
	if shown < total {
		parts = append(parts, "m more")
	}
	parts = append(parts, "tab expand", "c reply", "r refresh", "o open", "q quit")
	if m.anon {
		parts = append(parts, "read-only (no login)")
	}
	return common.StatusBarStyle.Render("  " + strings.Join(parts, " · "))
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// --- Scroll window ---

// rowSlots approximates how many post cards fit on screen.
func (m Model) rowSlots() int {
	h := m.height
	if h <= 0 {
		h = 40
	}
	slots := (h - 6) / 6
	if slots < 2 {
		slots = 2
	}
	return slots
}

func (m Model) visibleWindow(total int) (int, int) {
	slots := m.rowSlots()
	start := m.scroll
	if start > total-1 {
		start = total - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + slots
	if end > total {
		end = total
	}
	return start, end
}

// ensureCursorVisible nudges the scroll window so the cursor stays
// inside it, stepping one row at a time.
func (m *Model) ensureCursorVisible() {
	slots := m.rowSlots()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+slots {
		m.scroll = m.cursor - slots + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m Model) cardWidth(depth int) int {
	w := m.width
	if w <= 0 {
		w = 100
	}
	w = w - 8 - depth*2
	if w < 24 {
		w = 24
	}
	return w
}
