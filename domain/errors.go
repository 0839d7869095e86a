package domain

import "errors"

var (
	// ErrInvalidURL indicates a post URL that doesn't match the expected
	// bsky.app profile/post pattern. Terminal; a configuration problem.
	ErrInvalidURL = errors.New("invalid post URL")

	// ErrAuthFailed indicates the login handshake was rejected. Non-fatal:
	// the client degrades to an anonymous session.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the referenced post no longer exists.
	// Terminal for the current ref.
	ErrNotFound = errors.New("post not found")

	// ErrMalformedResponse indicates the server response didn't match the
	// expected schema. Terminal; an upstream contract violation.
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrEmptyReply indicates the user submitted an empty reply.
	ErrEmptyReply = errors.New("reply cannot be empty")

	// ErrUnauthenticated indicates a write was attempted without a
	// logged-in session.
	ErrUnauthenticated = errors.New("not logged in")
)
