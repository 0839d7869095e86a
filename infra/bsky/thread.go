package bsky

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"skythread/domain"
)

// threadService implements app.ThreadService against
// app.bsky.feed.getPostThread.
type threadService struct {
	client *Client
}

// NewThreadService creates a ThreadService backed by the XRPC client.
func NewThreadService(client *Client) *threadService {
	return &threadService{client: client}
}

const fetchDepth = 10

// --- Raw XRPC shapes (subset of the app.bsky lexicon) ---

type getPostThreadResponse struct {
	Thread threadView `json:"thread"`
}

type threadView struct {
	Type     string       `json:"$type"`
	Post     *postView    `json:"post"`
	Replies  []threadView `json:"replies"`
	NotFound bool         `json:"notFound"`
	Blocked  bool         `json:"blocked"`
}

type postView struct {
	URI        string     `json:"uri"`
	CID        string     `json:"cid"`
	Author     actorView  `json:"author"`
	Record     postRecord `json:"record"`
	Embed      *embedView `json:"embed"`
	ReplyCount int        `json:"replyCount"`
}

type actorView struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type postRecord struct {
	Text      string  `json:"text"`
	CreatedAt string  `json:"createdAt"`
	Facets    []facet `json:"facets"`
}

type facet struct {
	Index    byteSlice      `json:"index"`
	Features []facetFeature `json:"features"`
}

type byteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

type facetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri"` // app.bsky.richtext.facet#link
	DID  string `json:"did"` // app.bsky.richtext.facet#mention
}

type embedView struct {
	Type   string      `json:"$type"`
	Images []imageView `json:"images"` // app.bsky.embed.images#view
	Record *viewRecord `json:"record"` // app.bsky.embed.record#view
}

type imageView struct {
	Thumb    string `json:"thumb"`
	Fullsize string `json:"fullsize"`
	Alt      string `json:"alt"`
}

type viewRecord struct {
	Author actorView   `json:"author"`
	Value  postRecord  `json:"value"`
	Embeds []embedView `json:"embeds"`
}

// FetchThread retrieves the post plus its full reply tree and normalizes
// it into the arena model. Works anonymously; an authenticated session
// only widens what the service returns.
func (s *threadService) FetchThread(ctx context.Context, ref domain.PostRef) (*domain.Thread, error) {
	query := url.Values{}
	query.Set("uri", ref.URI)
	query.Set("depth", strconv.Itoa(fetchDepth))

	var resp getPostThreadResponse
	if err := s.client.get(ctx, "app.bsky.feed.getPostThread", query, &resp); err != nil {
		return nil, fmt.Errorf("fetching thread: %w", err)
	}

	return normalizeThread(resp.Thread)
}

func normalizeThread(tv threadView) (*domain.Thread, error) {
	if tv.NotFound || tv.Type == "app.bsky.feed.defs#notFoundPost" {
		return nil, fmt.Errorf("normalizing thread: %w", domain.ErrNotFound)
	}
	if tv.Post == nil {
		return nil, fmt.Errorf("%w: thread view without post", domain.ErrMalformedResponse)
	}

	th := &domain.Thread{
		RootURI: tv.Post.URI,
		Posts:   make(map[string]domain.Post),
	}
	th.Posts[tv.Post.URI] = mapPost(*tv.Post)
	th.Replies = mapReplies(tv.Replies, th.Posts)
	return th, nil
}

// mapReplies walks the nested reply views into the arena, preserving the
// server's delivery order. Unfetchable branches (not found, blocked,
// missing post) are dropped, not surfaced as errors.
func mapReplies(views []threadView, arena map[string]domain.Post) []domain.ReplyNode {
	var nodes []domain.ReplyNode
	for _, v := range views {
		if v.Post == nil || v.NotFound || v.Blocked {
			continue
		}
		arena[v.Post.URI] = mapPost(*v.Post)
		nodes = append(nodes, domain.ReplyNode{
			URI:      v.Post.URI,
			Children: mapReplies(v.Replies, arena),
		})
	}
	return nodes
}

func mapPost(pv postView) domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, pv.Record.CreatedAt)

	p := domain.Post{
		Ref:        domain.PostRef{URI: pv.URI, CID: pv.CID},
		Author:     mapAuthor(pv.Author),
		Text:       pv.Record.Text,
		Spans:      mapFacets(pv.Record.Facets),
		ReplyCount: pv.ReplyCount,
		CreatedAt:  createdAt,
	}
	if pv.Embed != nil {
		p.Media = mapImages(pv.Embed.Images)
		p.Quoted = mapQuoted(pv.Embed.Record)
	}
	return p
}

func mapAuthor(av actorView) domain.Author {
	return domain.Author{
		DID:         av.DID,
		Handle:      av.Handle,
		DisplayName: av.DisplayName,
		AvatarURL:   av.Avatar,
	}
}

// mapFacets converts byte-range facets into sorted spans. The server
// does not guarantee facet order, and rendering requires it.
func mapFacets(facets []facet) []domain.TextSpan {
	spans := make([]domain.TextSpan, 0, len(facets))
	for _, f := range facets {
		sp := domain.TextSpan{Start: f.Index.ByteStart, End: f.Index.ByteEnd}
		// A facet may carry several features; links win over mentions,
		// anything else degrades to plain text for that slice.
		for _, feat := range f.Features {
			if feat.Type == "app.bsky.richtext.facet#link" {
				sp.Kind = domain.SpanLink
				sp.URI = feat.URI
				break
			}
			if feat.Type == "app.bsky.richtext.facet#mention" && sp.Kind == domain.SpanPlain {
				sp.Kind = domain.SpanMention
				sp.DID = feat.DID
			}
		}
		spans = append(spans, sp)
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	if len(spans) == 0 {
		return nil
	}
	return spans
}

func mapImages(images []imageView) []domain.Media {
	if len(images) == 0 {
		return nil
	}
	out := make([]domain.Media, 0, len(images))
	for _, img := range images {
		out = append(out, domain.Media{
			ThumbURL:    img.Thumb,
			FullsizeURL: img.Fullsize,
			Alt:         img.Alt,
		})
	}
	return out
}

// mapQuoted maps an embedded record view one level deep. A quote inside
// the quoted post is not followed.
func mapQuoted(rec *viewRecord) *domain.QuotedPost {
	if rec == nil {
		return nil
	}
	q := &domain.QuotedPost{
		Author: mapAuthor(rec.Author),
		Text:   rec.Value.Text,
	}
	for _, e := range rec.Embeds {
		if len(e.Images) > 0 {
			q.Media = mapImages(e.Images)
			break
		}
	}
	return q
}
