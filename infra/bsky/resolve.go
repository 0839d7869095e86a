package bsky

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"skythread/domain"
)

var directiveRe = regexp.MustCompile(`\{\{bluesky:(.*?)\}\}`)

// ExtractDirectiveURL pulls the post URL out of a {{bluesky:URL}} markup
// directive. Plain input without the directive wrapper is returned as-is
// so both forms are accepted.
func ExtractDirectiveURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if m := directiveRe.FindStringSubmatch(raw); m != nil {
		extracted := strings.TrimSpace(m[1])
		if extracted == "" {
			return "", fmt.Errorf("%w: empty bluesky directive", domain.ErrInvalidURL)
		}
		return extracted, nil
	}
	if raw == "" {
		return "", fmt.Errorf("%w: no URL given", domain.ErrInvalidURL)
	}
	return raw, nil
}

// ResolvePostURL converts a human-facing post URL of the form
// https://bsky.app/profile/<handle>/post/<rkey> into the canonical
// at://<handle>/app.bsky.feed.post/<rkey> identifier. Pure string
// transform; the CID is left empty until the post is fetched.
func ResolvePostURL(raw string) (domain.PostRef, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.PostRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidURL, raw)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return domain.PostRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidURL, raw)
	}

	// The handle follows the literal "profile" segment; the post id is the
	// trailing segment and must come after the handle.
	handle := ""
	for i, seg := range segments {
		if seg == "profile" && i+1 < len(segments)-1 {
			handle = segments[i+1]
			break
		}
	}
	postID := segments[len(segments)-1]
	if handle == "" || postID == "" {
		return domain.PostRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidURL, raw)
	}

	return domain.PostRef{
		URI: fmt.Sprintf("at://%s/app.bsky.feed.post/%s", handle, postID),
	}, nil
}
