package bsky

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"skythread/domain"
)

const sampleThreadJSON = `{
  "thread": {
    "$type": "app.bsky.feed.defs#threadViewPost",
    "post": {
      "uri": "at://did:plc:root/app.bsky.feed.post/abc",
      "cid": "cid-root",
      "author": {"did": "did:plc:root", "handle": "alice.bsky.social", "displayName": "Alice"},
      "record": {
        "text": "see https://example.test and @bob",
        "createdAt": "2026-08-01T10:00:00Z",
        "facets": [
          {"index": {"byteStart": 29, "byteEnd": 33},
           "features": [{"$type": "app.bsky.richtext.facet#mention", "did": "did:plc:bob"}]},
          {"index": {"byteStart": 4, "byteEnd": 24},
           "features": [{"$type": "app.bsky.richtext.facet#link", "uri": "https://example.test"}]}
        ]
      },
      "embed": {
        "$type": "app.bsky.embed.images#view",
        "images": [{"thumb": "https://t/1", "fullsize": "https://f/1", "alt": "a pic"}]
      },
      "replyCount": 2
    },
    "replies": [
      {
        "$type": "app.bsky.feed.defs#threadViewPost",
        "post": {
          "uri": "at://did:plc:bob/app.bsky.feed.post/r1",
          "cid": "cid-r1",
          "author": {"did": "did:plc:bob", "handle": "bob.bsky.social"},
          "record": {"text": "first", "createdAt": "2026-08-01T10:05:00Z"}
        },
        "replies": [
          {
            "$type": "app.bsky.feed.defs#threadViewPost",
            "post": {
              "uri": "at://did:plc:carol/app.bsky.feed.post/r1a",
              "cid": "cid-r1a",
              "author": {"did": "did:plc:carol", "handle": "carol.bsky.social"},
              "record": {"text": "nested", "createdAt": "2026-08-01T10:06:00Z"}
            }
          }
        ]
      },
      {"$type": "app.bsky.feed.defs#blockedPost", "blocked": true},
      {
        "$type": "app.bsky.feed.defs#threadViewPost",
        "post": {
          "uri": "at://did:plc:dan/app.bsky.feed.post/r2",
          "cid": "cid-r2",
          "author": {"did": "did:plc:dan", "handle": "dan.bsky.social"},
          "record": {"text": "second", "createdAt": "2026-08-01T10:07:00Z"}
        }
      }
    ]
  }
}`

func TestNormalizeThread_BuildsArenaAndForest(t *testing.T) {
	var resp getPostThreadResponse
	if err := json.Unmarshal([]byte(sampleThreadJSON), &resp); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	th, err := normalizeThread(resp.Thread)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if th.RootURI != "at://did:plc:root/app.bsky.feed.post/abc" {
		t.Fatalf("unexpected root URI: %q", th.RootURI)
	}
	if len(th.Posts) != 4 {
		t.Fatalf("expected 4 posts in arena, got %d", len(th.Posts))
	}
	// Blocked branch dropped, order preserved.
	if len(th.Replies) != 2 || th.Replies[0].URI != "at://did:plc:bob/app.bsky.feed.post/r1" {
		t.Fatalf("unexpected reply forest: %#v", th.Replies)
	}
	if len(th.Replies[0].Children) != 1 {
		t.Fatalf("expected one nested reply, got %#v", th.Replies[0].Children)
	}
	if th.ReplyTotal() != 3 {
		t.Fatalf("expected reply total 3, got %d", th.ReplyTotal())
	}

	root, _ := th.Root()
	if root.Ref.CID != "cid-root" {
		t.Fatalf("expected root CID populated: %#v", root.Ref)
	}
	if len(root.Media) != 1 || root.Media[0].Alt != "a pic" {
		t.Fatalf("unexpected media mapping: %#v", root.Media)
	}
}

func TestNormalizeThread_SortsFacetsByStart(t *testing.T) {
	var resp getPostThreadResponse
	if err := json.Unmarshal([]byte(sampleThreadJSON), &resp); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	th, err := normalizeThread(resp.Thread)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	root, _ := th.Root()
	if len(root.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %#v", root.Spans)
	}
	if root.Spans[0].Kind != domain.SpanLink || root.Spans[0].Start != 4 {
		t.Fatalf("expected link span first after sort: %#v", root.Spans[0])
	}
	if root.Spans[1].Kind != domain.SpanMention || root.Spans[1].DID != "did:plc:bob" {
		t.Fatalf("expected mention span second: %#v", root.Spans[1])
	}
}

func TestNormalizeThread_NotFound(t *testing.T) {
	tv := threadView{Type: "app.bsky.feed.defs#notFoundPost", NotFound: true}
	if _, err := normalizeThread(tv); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeThread_MissingPostIsMalformed(t *testing.T) {
	tv := threadView{Type: "app.bsky.feed.defs#threadViewPost"}
	if _, err := normalizeThread(tv); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestFetchThread_RequestShape(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		_, _ = w.Write([]byte(sampleThreadJSON))
	})

	svc := NewThreadService(newTestClient(h))
	ref := domain.PostRef{URI: "at://did:plc:root/app.bsky.feed.post/abc"}
	th, err := svc.FetchThread(context.Background(), ref)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotPath != "/xrpc/app.bsky.feed.getPostThread" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotQuery.Get("uri") != ref.URI || gotQuery.Get("depth") != "10" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if th.ReplyTotal() != 3 {
		t.Fatalf("unexpected reply total: %d", th.ReplyTotal())
	}
}

func TestFetchThread_NotFoundError(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "NotFound", "message": "post not found"}`))
	})

	svc := NewThreadService(newTestClient(h))
	_, err := svc.FetchThread(context.Background(), domain.PostRef{URI: "at://gone"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchThread_MalformedBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"thread": [1,2,3]}`))
	})

	svc := NewThreadService(newTestClient(h))
	_, err := svc.FetchThread(context.Background(), domain.PostRef{URI: "at://x"})
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestMapQuoted_OneLevelOnly(t *testing.T) {
	rec := &viewRecord{
		Author: actorView{Handle: "quoted.bsky.social"},
		Value:  postRecord{Text: "the quoted text"},
		Embeds: []embedView{{
			Type:   "app.bsky.embed.images#view",
			Images: []imageView{{Thumb: "t", Fullsize: "f", Alt: "alt"}},
		}},
	}

	q := mapQuoted(rec)
	if q == nil || q.Text != "the quoted text" || q.Author.Handle != "quoted.bsky.social" {
		t.Fatalf("unexpected quote mapping: %#v", q)
	}
	if len(q.Media) != 1 {
		t.Fatalf("expected quoted media carried over: %#v", q.Media)
	}
	if mapQuoted(nil) != nil {
		t.Fatalf("nil record must map to nil quote")
	}
}
