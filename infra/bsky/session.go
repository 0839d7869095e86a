package bsky

import (
	"context"
	"errors"
	"fmt"

	"skythread/domain"
)

// Session holds the service endpoint and, after a successful login, the
// identity the server issued. Established once at startup and reused
// across fetches and reply submissions; only Login mutates it.
type Session struct {
	ServiceURL    string
	DID           string
	Handle        string
	Authenticated bool

	accessJwt string
}

// createSessionResponse is the subset of com.atproto.server.createSession
// output we care about.
type createSessionResponse struct {
	DID       string `json:"did"`
	Handle    string `json:"handle"`
	AccessJwt string `json:"accessJwt"`
}

// Login performs the com.atproto.server.createSession handshake and
// upgrades the client's session in place. A rejected handshake returns
// ErrAuthFailed wrapped; callers treat that as non-fatal and continue
// anonymously.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var resp createSessionResponse
	if err := c.post(ctx, "com.atproto.server.createSession", body, &resp); err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	if resp.AccessJwt == "" || resp.DID == "" {
		return fmt.Errorf("%w: empty session in response", domain.ErrAuthFailed)
	}

	c.session.DID = resp.DID
	c.session.Handle = resp.Handle
	c.session.accessJwt = resp.AccessJwt
	c.session.Authenticated = true
	return nil
}
