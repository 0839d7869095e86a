package app

import (
	"context"

	"skythread/domain"
)

// ReplyService publishes replies against an existing thread.
type ReplyService interface {
	// SubmitReply creates a reply to parent within the thread rooted at
	// root. Requires an authenticated session and non-empty text.
	SubmitReply(ctx context.Context, parent, root domain.PostRef, text string) error
}
