package thread

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"skythread/domain"
)

// stubThreads counts fetches and serves a scripted thread or error.
type stubThreads struct {
	calls int
	th    *domain.Thread
	err   error
}

func (s *stubThreads) FetchThread(context.Context, domain.PostRef) (*domain.Thread, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.th, nil
}

// drainCmd executes a command tree and collects the produced messages.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drainCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func testRef() domain.PostRef {
	return domain.PostRef{URI: "at://alice.bsky.social/app.bsky.feed.post/root", CID: "cid-root"}
}

// makeThread builds a thread with n top-level replies, each carrying
// childPerReply children.
func makeThread(n, childPerReply int) *domain.Thread {
	ref := testRef()
	th := &domain.Thread{
		RootURI: ref.URI,
		Posts:   map[string]domain.Post{},
	}
	th.Posts[ref.URI] = domain.Post{
		Ref:       ref,
		Author:    domain.Author{Handle: "alice.bsky.social", DisplayName: "Alice"},
		Text:      "root post",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	for i := 0; i < n; i++ {
		uri := fmt.Sprintf("at://did:plc:r%d/app.bsky.feed.post/%d", i, i)
		th.Posts[uri] = domain.Post{
			Ref:       domain.PostRef{URI: uri, CID: fmt.Sprintf("cid-%d", i)},
			Author:    domain.Author{Handle: fmt.Sprintf("user%d.bsky.social", i)},
			Text:      fmt.Sprintf("reply %d", i),
			CreatedAt: time.Now().Add(-time.Duration(n-i) * time.Minute),
		}
		node := domain.ReplyNode{URI: uri}
		for j := 0; j < childPerReply; j++ {
			curi := fmt.Sprintf("%s-c%d", uri, j)
			th.Posts[curi] = domain.Post{
				Ref:    domain.PostRef{URI: curi},
				Author: domain.Author{Handle: "child.bsky.social"},
				Text:   "nested",
			}
			node.Children = append(node.Children, domain.ReplyNode{URI: curi})
		}
		th.Replies = append(th.Replies, node)
	}
	return th
}

// loadedModel returns a model that has completed its initial fetch.
func loadedModel(th *domain.Thread) Model {
	m := New(&stubThreads{th: th}, testRef(), false, time.Minute)
	m.width = 120
	m.height = 40
	m, _ = m.Update(LoadedMsg{Thread: th, Seq: m.fetchSeq})
	return m
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
