package thread

import (
	"context"
	"net/url"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchThread(seq int, background bool) tea.Cmd {
	threads := m.threads
	ref := m.ref
	return func() tea.Msg {
		th, err := threads.FetchThread(context.Background(), ref)
		if err != nil {
			return ErrorMsg{Err: err, Seq: seq, Background: background}
		}
		return LoadedMsg{Thread: th, Seq: seq, Background: background}
	}
}

// pollTick arms the recurring background-refresh timer. Exactly one tick
// is in flight at a time; the handler re-arms it.
func (m Model) pollTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// webURL converts an at:// post URI back into its bsky.app web form for
// opening in a browser. Returns "" when the URI doesn't look like a post.
func webURL(atURI string) string {
	rest, ok := strings.CutPrefix(atURI, "at://")
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "app.bsky.feed.post" {
		return ""
	}
	return "https://bsky.app/profile/" + parts[0] + "/post/" + parts[2]
}

func openURL(rawURL string) tea.Cmd {
	if !isSafeExternalURL(rawURL) {
		return nil
	}
	return func() tea.Msg {
		_ = exec.Command("open", rawURL).Start()
		return nil
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
