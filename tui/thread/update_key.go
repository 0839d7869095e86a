package thread

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(buildRows(m.thread, m.view))-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.More):
		if m.thread == nil {
			return m, nil
		}
		m.view = m.view.expandPage(len(m.thread.Replies))
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		r, ok := m.selectedRow()
		if !ok || r.depth != 1 {
			// Only direct replies own an expandable subtree.
			return m, nil
		}
		m.view = m.view.toggleExpanded(r.uri)
		m.clampCursor(r.uri)
		return m, nil

	case key.Matches(msg, m.keys.Ack):
		m.view = m.view.acknowledgeNotifications()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		// A deliberate keypress is treated like a post-submit refresh:
		// it bypasses the cooldown but still never doubles up a fetch.
		return m.ForceRefresh()

	case key.Matches(msg, m.keys.Reply):
		if m.anon || m.thread == nil {
			return m, nil
		}
		parent, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		root, ok := m.thread.Root()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return ComposeReplyMsg{Parent: parent.Ref, Root: root.Ref}
		}

	case key.Matches(msg, m.keys.Open):
		p, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		return m, openURL(webURL(p.Ref.URI))
	}

	return m, nil
}
