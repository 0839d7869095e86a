package domain

import "time"

// PostRef identifies a single post on the service. URI is the canonical
// at:// identifier; CID is the content hash the service requires when a
// post is referenced from a new record (e.g. as a reply parent). CID is
// empty for refs produced by the resolver and is filled in by the fetcher.
type PostRef struct {
	URI string
	CID string
}

// Author is the read-only author info attached to a post.
type Author struct {
	DID         string
	Handle      string
	DisplayName string
	AvatarURL   string
}

// Name returns the display name, falling back to the handle.
func (a Author) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Handle
}

// SpanKind tags a TextSpan with the feature it carries.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanLink
	SpanMention
)

// TextSpan marks the byte range [Start, End) of a post's text as carrying
// a link or mention. Spans within one post are non-overlapping; the
// fetcher sorts them by Start regardless of server order.
type TextSpan struct {
	Start int
	End   int
	Kind  SpanKind
	URI   string // Link target, for SpanLink
	DID   string // Mentioned account, for SpanMention
}

// Media is one image attachment on a post.
type Media struct {
	ThumbURL    string
	FullsizeURL string
	Alt         string
}

// QuotedPost is an embedded reference to another post. One level only;
// a quote inside a quote is dropped during normalization.
type QuotedPost struct {
	Author Author
	Text   string
	Media  []Media
}

// Post is a single post as fetched from the service. Immutable once
// normalized; later fetches supersede it rather than mutating it.
type Post struct {
	Ref        PostRef
	Author     Author
	Text       string
	Spans      []TextSpan
	Media      []Media
	Quoted     *QuotedPost
	ReplyCount int
	CreatedAt  time.Time
}
