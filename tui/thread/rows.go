package thread

import "skythread/domain"

// row is one selectable line of the rendered thread: the root post, a
// top-level reply, or one expanded child reply.
type row struct {
	uri   string
	depth int // 0 root, 1 direct reply, 2 expanded child
}

// buildRows flattens the thread into the visible row list: the root,
// then the paginated window of direct replies, each followed by its
// children when expanded. Nesting past the second level exists in the
// model but is never rendered; that is a deliberate view limit.
func buildRows(th *domain.Thread, v viewState) []row {
	if th == nil {
		return nil
	}
	rows := []row{{uri: th.RootURI, depth: 0}}

	visible := v.visibleReplyCount
	if visible > len(th.Replies) {
		visible = len(th.Replies)
	}
	for _, node := range th.Replies[:visible] {
		rows = append(rows, row{uri: node.URI, depth: 1})
		if !v.expandedNodes[node.URI] {
			continue
		}
		for _, child := range node.Children {
			rows = append(rows, row{uri: child.URI, depth: 2})
		}
	}
	return rows
}

// selectedRow returns the row under the cursor, if any.
func (m Model) selectedRow() (row, bool) {
	rows := buildRows(m.thread, m.view)
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

// selectedPost returns the post under the cursor.
func (m Model) selectedPost() (domain.Post, bool) {
	r, ok := m.selectedRow()
	if !ok || m.thread == nil {
		return domain.Post{}, false
	}
	return m.thread.Post(r.uri)
}

// clampCursor keeps the cursor on an existing row after the thread or
// the view window changed underneath it, preferring to stay on the same
// post URI when it is still visible.
func (m *Model) clampCursor(prevURI string) {
	rows := buildRows(m.thread, m.view)
	if len(rows) == 0 {
		m.cursor = 0
		return
	}
	if prevURI != "" {
		for i, r := range rows {
			if r.uri == prevURI {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// hiddenChildCount is the number of direct children a collapsed reply is
// holding back, shown as a "+N" affordance.
func hiddenChildCount(th *domain.Thread, uri string) int {
	if th == nil {
		return 0
	}
	for _, node := range th.Replies {
		if node.URI == uri {
			return len(node.Children)
		}
	}
	return 0
}
