package domain

// ReplyNode is one reply and its direct children, recursively. Nodes hold
// arena keys (AT-URIs) rather than embedded Post copies so that diffing
// successive fetches is a map lookup, not a tree walk.
type ReplyNode struct {
	URI      string
	Children []ReplyNode
}

// Thread is a root post plus its full reply forest, the unit retrieved
// per fetch cycle. Posts is the arena keyed by AT-URI; RootURI and every
// ReplyNode.URI index into it.
type Thread struct {
	RootURI string
	Posts   map[string]Post
	Replies []ReplyNode
}

// Root returns the root post of the thread.
func (t *Thread) Root() (Post, bool) {
	p, ok := t.Posts[t.RootURI]
	return p, ok
}

// Post looks up a post in the arena by URI.
func (t *Thread) Post(uri string) (Post, bool) {
	p, ok := t.Posts[uri]
	return p, ok
}

// ReplyTotal is the size of the full reply forest, used for diffing
// successive fetches.
func (t *Thread) ReplyTotal() int {
	return countNodes(t.Replies)
}

func countNodes(nodes []ReplyNode) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Children)
	}
	return n
}
