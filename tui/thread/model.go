package thread

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skythread/app"
	"skythread/domain"
	"skythread/tui/common"
)

// backgroundCooldown suppresses redundant background triggers: a timer
// tick and a terminal focus event often land together, and one fetch is
// enough.
const backgroundCooldown = 10 * time.Second

// --- Messages ---

// LoadedMsg is sent when a thread fetch completes successfully.
type LoadedMsg struct {
	Thread     *domain.Thread
	Seq        int
	Background bool
}

// ErrorMsg is sent when a thread fetch fails.
type ErrorMsg struct {
	Err        error
	Seq        int
	Background bool
}

// ComposeReplyMsg asks the root model to open the reply composer for the
// selected post.
type ComposeReplyMsg struct {
	Parent domain.PostRef
	Root   domain.PostRef
}

// pollTickMsg fires on the recurring background-refresh timer.
type pollTickMsg struct{}

type syncPhase int

const (
	phaseIdle syncPhase = iota
	phaseFetchingInitial
	phaseFetchingBackground
	phaseError
)

// Model holds the state for the thread view: the last good thread from
// the server, the user's view state over it, and the synchronization
// state machine that keeps the two reconciled.
type Model struct {
	threads app.ThreadService
	ref     domain.PostRef
	anon    bool // Session is unauthenticated; shown on errors and gates reply

	thread   *domain.Thread
	view     viewState
	phase    syncPhase
	err      error // Initial-fetch error, user visible
	syncErr  error // Last background error, diagnostic only
	terminal bool  // Ref is gone or broken; no further automatic fetches

	fetchSeq int  // Matches responses to the latest request
	closed   bool // Teardown flag; late responses are discarded

	pollInterval time.Duration
	cursor       int // 0 is the root post, 1..n index visible reply rows
	scroll       int

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int

	now func() time.Time // Injected for tests
}

// New creates a thread model for the given post ref.
func New(threads app.ThreadService, ref domain.PostRef, anonymous bool, pollInterval time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#0A7AFF"))

	return Model{
		threads:      threads,
		ref:          ref,
		anon:         anonymous,
		view:         newViewState(),
		phase:        phaseFetchingInitial,
		fetchSeq:     1,
		pollInterval: pollInterval,
		keys:         common.DefaultKeyMap(),
		spinner:      s,
		now:          time.Now,
	}
}

// Init starts the initial fetch and arms the poll timer. New already put
// the model in the initial fetching phase.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchThread(m.fetchSeq, false), m.pollTick(), m.spinner.Tick)
}

// Update handles messages for the thread view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// ForceRefresh triggers one fetch immediately, bypassing the cooldown.
// Used after the user posts a reply, where staleness is guaranteed.
func (m Model) ForceRefresh() (Model, tea.Cmd) {
	if m.closed || m.terminal || m.inFlight() {
		return m, nil
	}
	return m.startFetch(true)
}

// Close tears the view down: the poll timer stops re-arming and any
// late-arriving response is discarded. Safe to call more than once.
func (m Model) Close() Model {
	m.closed = true
	return m
}

// PostByURI exposes a loaded post for callers outside the view, such as
// the composer header.
func (m Model) PostByURI(uri string) (domain.Post, bool) {
	if m.thread == nil {
		return domain.Post{}, false
	}
	return m.thread.Post(uri)
}

func (m Model) inFlight() bool {
	return m.phase == phaseFetchingInitial || m.phase == phaseFetchingBackground
}

// shouldStartBackground applies the background-trigger guard: never
// while a fetch is in flight, never after teardown or a terminal error,
// and not within the cooldown window of the last completed fetch.
func (m Model) shouldStartBackground(now time.Time) bool {
	if m.closed || m.terminal || m.inFlight() {
		return false
	}
	if m.thread == nil && m.phase != phaseError {
		// Initial load still pending; the poll timer isn't a retry path.
		return false
	}
	if !m.view.lastFetch.IsZero() && now.Sub(m.view.lastFetch) < backgroundCooldown {
		return false
	}
	return true
}

// startFetch transitions into the fetching phase and returns the fetch
// command. background selects the error policy applied on completion.
func (m Model) startFetch(background bool) (Model, tea.Cmd) {
	m.fetchSeq++
	if background {
		m.phase = phaseFetchingBackground
	} else {
		m.phase = phaseFetchingInitial
	}
	return m, m.fetchThread(m.fetchSeq, background)
}
