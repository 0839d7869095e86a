package app

import (
	"context"

	"skythread/domain"
)

// ThreadService retrieves a post plus its full reply tree.
type ThreadService interface {
	// FetchThread returns the normalized thread for the given post ref.
	// Works anonymously; credentials only widen what the service returns.
	FetchThread(ctx context.Context, ref domain.PostRef) (*domain.Thread, error)
}
