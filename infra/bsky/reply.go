package bsky

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skythread/domain"
)

// replyService implements app.ReplyService against
// com.atproto.repo.createRecord.
type replyService struct {
	client *Client
}

// NewReplyService creates a ReplyService backed by the XRPC client.
func NewReplyService(client *Client) *replyService {
	return &replyService{client: client}
}

type strongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type replyRefs struct {
	Root   strongRef `json:"root"`
	Parent strongRef `json:"parent"`
}

type postRecordOut struct {
	Type      string    `json:"$type"`
	Text      string    `json:"text"`
	Reply     replyRefs `json:"reply"`
	CreatedAt string    `json:"createdAt"`
}

type createRecordRequest struct {
	Repo       string        `json:"repo"`
	Collection string        `json:"collection"`
	Record     postRecordOut `json:"record"`
}

// SubmitReply creates a reply to parent within the thread rooted at
// root. The session must be authenticated and the text non-empty after
// trimming; both are also gated in the UI, but the service enforces them
// so a misuse never reaches the wire.
func (s *replyService) SubmitReply(ctx context.Context, parent, root domain.PostRef, text string) error {
	sess := s.client.Session()
	if !sess.Authenticated {
		return domain.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyReply
	}

	req := createRecordRequest{
		Repo:       sess.DID,
		Collection: "app.bsky.feed.post",
		Record: postRecordOut{
			Type:      "app.bsky.feed.post",
			Text:      text,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Reply: replyRefs{
				Root:   strongRef{URI: root.URI, CID: root.CID},
				Parent: strongRef{URI: parent.URI, CID: parent.CID},
			},
		},
	}

	if err := s.client.post(ctx, "com.atproto.repo.createRecord", req, nil); err != nil {
		return fmt.Errorf("submitting reply: %w", err)
	}
	return nil
}
