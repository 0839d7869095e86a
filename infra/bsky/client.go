package bsky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"skythread/domain"
)

// Client is a thin HTTP wrapper for the AT Protocol XRPC API. It handles
// base URL construction, access-token injection, and outbound rate
// limiting so background polling plus user actions cannot hammer the
// service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	session *Session
}

// NewClient creates an XRPC client against the given PDS base URL. The
// session starts anonymous; Login upgrades it in place.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// A fetch that never resolves would park the sync loop in its
		// fetching state forever, so the transport gets a hard timeout.
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 4),
		session: &Session{ServiceURL: baseURL},
	}
}

// Session returns the shared session. It is mutated only by Login and is
// read-only afterwards.
func (c *Client) Session() *Session {
	return c.session
}

// xrpcError is the error envelope XRPC endpoints return on non-2xx.
type xrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, nsid string, query url.Values, out any) error {
	endpoint := c.baseURL + "/xrpc/" + nsid
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nsid, out)
}

func (c *Client) post(ctx context.Context, nsid string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/xrpc/"+nsid, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nsid, out)
}

func (c *Client) do(req *http.Request, nsid string, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	if token := c.session.accessJwt; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s: %w", nsid, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapXRPCError(nsid, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, nsid, err)
		}
	}
	return nil
}

func mapXRPCError(nsid string, status int, body []byte) error {
	var xe xrpcError
	_ = json.Unmarshal(body, &xe)

	switch {
	case xe.Error == "NotFound" || status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, nsid)
	case status == http.StatusUnauthorized || xe.Error == "AuthenticationRequired":
		return fmt.Errorf("%w: %s", domain.ErrAuthFailed, nsid)
	case xe.Message != "":
		return fmt.Errorf("API %s returned %d: %s", nsid, status, xe.Message)
	default:
		return fmt.Errorf("API %s returned %d: %s", nsid, status, string(body))
	}
}
