package compose

import (
	"errors"
	"fmt"
	"strings"

	"skythread/domain"
	"skythread/tui/common"
)

// View renders the composer: header, textarea, and a status line that
// doubles as the error surface when a submission fails.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("skythread"))
	if m.to != "" {
		b.WriteString("  replying to " + common.HandleStyle.Render("@"+m.to))
	} else {
		b.WriteString("  new reply")
	}
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	switch {
	case m.submitting:
		b.WriteString(common.StatusBarStyle.Render("  posting..."))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("  " + submitErrorLine(m.err)))
	default:
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: post · esc: cancel · %d/300 chars", len(m.textarea.Value()))))
	}
	return b.String()
}

func submitErrorLine(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyReply):
		return "reply is empty; write something or esc to cancel"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "posting requires a login; restart with credentials set"
	default:
		return "could not post reply: " + err.Error()
	}
}
