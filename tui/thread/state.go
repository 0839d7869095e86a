package thread

import "time"

// replyPageSize is the fixed increment by which the top-level reply
// window grows when the user asks for more.
const replyPageSize = 3

// viewState is the client-local, user-intent-driven display state. It is
// never sent to the server and never reset by a background fetch; only
// the notification bookkeeping changes automatically.
type viewState struct {
	visibleReplyCount    int
	expandedNodes        map[string]bool
	pendingNotifications int
	lastKnownReplyTotal  int
	lastFetch            time.Time
}

func newViewState() viewState {
	return viewState{
		visibleReplyCount: replyPageSize,
		expandedNodes:     map[string]bool{},
	}
}

// expandPage grows the visible top-level reply window by one page,
// capped at the number of top-level replies available.
func (v viewState) expandPage(topLevelTotal int) viewState {
	next := v.visibleReplyCount + replyPageSize
	if next > topLevelTotal {
		next = topLevelTotal
	}
	if next > v.visibleReplyCount {
		v.visibleReplyCount = next
	}
	return v
}

// toggleExpanded flips membership of uri in the expanded set. The map is
// copied so earlier states stay valid; reducers never share mutation.
func (v viewState) toggleExpanded(uri string) viewState {
	next := make(map[string]bool, len(v.expandedNodes)+1)
	for k, on := range v.expandedNodes {
		if on {
			next[k] = true
		}
	}
	if next[uri] {
		delete(next, uri)
	} else {
		next[uri] = true
	}
	v.expandedNodes = next
	return v
}

// acknowledgeNotifications clears the pending count. An explicit
// acknowledgement is the count's only way down.
func (v viewState) acknowledgeNotifications() viewState {
	v.pendingNotifications = 0
	return v
}

// applyFetchResult folds a completed fetch's reply total into the state.
// The very first fetch seeds the baseline without raising notifications.
// After that, growth adds the delta to the pending count and moves the
// baseline; shrinkage (deletions upstream) only refreshes the timestamp
// so a later re-appearance doesn't double-count.
func (v viewState) applyFetchResult(newTotal int, now time.Time) viewState {
	first := v.lastFetch.IsZero()
	v.lastFetch = now
	if first {
		v.lastKnownReplyTotal = newTotal
		return v
	}
	if newTotal > v.lastKnownReplyTotal {
		v.pendingNotifications += newTotal - v.lastKnownReplyTotal
		v.lastKnownReplyTotal = newTotal
	}
	return v
}
