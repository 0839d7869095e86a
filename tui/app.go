package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"skythread/app"
	"skythread/domain"
	"skythread/tui/common"
	"skythread/tui/compose"
	"skythread/tui/thread"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Threads      app.ThreadService
	Replies      app.ReplyService
	Ref          domain.PostRef
	Anonymous    bool
	PollInterval time.Duration
}

type activeView int

const (
	threadView activeView = iota
	composeView
)

// App is the root Bubble Tea model. It routes between the thread view and
// the reply composer.
type App struct {
	deps    Deps
	active  activeView
	thread  thread.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Reply posted!")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: threadView,
		thread: thread.New(deps.Threads, deps.Ref, deps.Anonymous, deps.PollInterval),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the thread view.
func (a App) Init() tea.Cmd {
	return a.thread.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Quit is global in the thread view; the composer owns every key
		// while it is open, so typing a 'q' in a draft still works.
		if a.active == threadView && key.Matches(msg, a.keys.Quit) {
			a.thread = a.thread.Close()
			return a, tea.Quit
		}

	case thread.ComposeReplyMsg:
		a.active = composeView
		a.status = ""
		handle := ""
		if p, ok := a.postForRef(msg.Parent); ok {
			handle = p.Author.Handle
		}
		a.compose = compose.New(a.deps.Replies, msg.Parent, msg.Root, handle)
		return a, a.compose.Init()

	case compose.DoneMsg:
		a.active = threadView
		if !msg.Posted {
			a.status = "Cancelled."
			return a, nil
		}
		a.status = "Reply posted!"
		// The server now has one more reply than we do; refresh right away.
		var cmd tea.Cmd
		a.thread, cmd = a.thread.ForceRefresh()
		return a, cmd
	}

	// Delegate to the active sub-model. Keys belong to the active view
	// alone, but everything else still reaches the thread model so the
	// background sync keeps running while a draft is open.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if a.active == composeView {
			updated, cmd := a.compose.Update(msg)
			a.compose = updated
			return a, cmd
		}
		a.status = ""
		updated, cmd := a.thread.Update(msg)
		a.thread = updated
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.thread, cmd = a.thread.Update(msg)
	cmds = append(cmds, cmd)
	if a.active == composeView {
		a.compose, cmd = a.compose.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// postForRef looks the ref up in the loaded thread for header display.
func (a App) postForRef(ref domain.PostRef) (domain.Post, bool) {
	return a.thread.PostByURI(ref.URI)
}

// View renders the active sub-model.
func (a App) View() string {
	var s string
	switch a.active {
	case threadView:
		s = a.thread.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render("  "+a.status)
	}
	return s
}
