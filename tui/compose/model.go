package compose

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"skythread/app"
	"skythread/domain"
)

// --- Messages ---

// DoneMsg is sent when composing is complete (posted or cancelled).
type DoneMsg struct {
	Posted bool
}

// submittedMsg reports the outcome of an async reply submission.
type submittedMsg struct {
	err error
	seq int
}

// --- Model ---

// Model holds the state for the inline reply composer. The reply goes to
// Parent within the thread rooted at Root; both refs were captured when
// the composer opened, so a background refresh can't retarget the reply.
type Model struct {
	reply  app.ReplyService
	parent domain.PostRef
	root   domain.PostRef
	to     string // Handle of the post being answered, for the header

	textarea   textarea.Model
	submitting bool
	err        error
	seq        int // Matches submission outcomes to the latest attempt
}

// New creates a reply composer targeting parent within root's thread.
func New(reply app.ReplyService, parent, root domain.PostRef, toHandle string) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your reply..."
	ta.CharLimit = 300
	ta.SetWidth(72)
	ta.SetHeight(5)
	ta.Focus()

	return Model{
		reply:    reply,
		parent:   parent,
		root:     root,
		to:       toHandle,
		textarea: ta,
	}
}

// Init returns the cursor blink command.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			// The draft survives the failure; the user can retry or esc out.
			m.err = msg.err
			return m, nil
		}
		return m, done(DoneMsg{Posted: true})

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{})

		case "ctrl+d":
			if m.submitting {
				return m, nil
			}
			if strings.TrimSpace(m.textarea.Value()) == "" {
				// Nothing to send; no request goes out.
				m.err = domain.ErrEmptyReply
				return m, nil
			}
			return m.submit()
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// submit starts the async createRecord call for the current draft.
func (m Model) submit() (Model, tea.Cmd) {
	m.submitting = true
	m.err = nil
	m.seq++

	reply := m.reply
	parent, root := m.parent, m.root
	text := m.textarea.Value()
	seq := m.seq
	return m, func() tea.Msg {
		return submittedMsg{err: reply.SubmitReply(context.Background(), parent, root, text), seq: seq}
	}
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
