package thread

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"skythread/domain"
)

// handleSyncMsg drives the fetch state machine: Idle → Fetching on a
// trigger, Fetching → Idle/Error on completion. Triggers arriving while
// a fetch is in flight are dropped, not queued, so at most one request
// is ever outstanding.
func (m Model) handleSyncMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		if m.closed || m.terminal {
			// Teardown or a dead ref: let the timer chain end here.
			return m, nil
		}
		cmds := []tea.Cmd{m.pollTick()}
		if m.shouldStartBackground(m.now()) {
			var fetch tea.Cmd
			m, fetch = m.startFetch(true)
			cmds = append(cmds, fetch)
		}
		return m, tea.Batch(cmds...)

	case tea.FocusMsg:
		if !m.shouldStartBackground(m.now()) {
			return m, nil
		}
		return m.startFetch(true)

	case LoadedMsg:
		if m.closed || msg.Seq != m.fetchSeq {
			// Late response after teardown or a newer request; discard.
			return m, nil
		}
		prevURI := ""
		if r, ok := m.selectedRow(); ok {
			prevURI = r.uri
		}
		// Replace the thread wholesale; view state carries over so the
		// user's window, expansions, and selection survive the refresh.
		m.thread = msg.Thread
		m.view = m.view.applyFetchResult(msg.Thread.ReplyTotal(), m.now())
		m.phase = phaseIdle
		m.err = nil
		m.syncErr = nil
		m.clampCursor(prevURI)
		m.ensureCursorVisible()
		return m, nil

	case ErrorMsg:
		if m.closed || msg.Seq != m.fetchSeq {
			return m, nil
		}
		if msg.Background && m.thread != nil {
			// Never replace working content with an error; keep the last
			// good thread and note the failure internally.
			m.phase = phaseIdle
			m.syncErr = msg.Err
			return m, nil
		}
		m.phase = phaseError
		m.err = msg.Err
		if errors.Is(msg.Err, domain.ErrNotFound) ||
			errors.Is(msg.Err, domain.ErrMalformedResponse) ||
			errors.Is(msg.Err, domain.ErrInvalidURL) {
			// Terminal for this ref: no automatic retry until restart.
			m.terminal = true
		}
		return m, nil
	}

	return m, nil
}
