package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds application-level configuration.
type Config struct {
	ServiceURL   string        // e.g. "https://bsky.social"
	Identifier   string        // Handle or email; empty means anonymous
	AppPassword  string        // App password paired with Identifier
	Post         string        // Post URL or {{bluesky:URL}} directive (required)
	PollInterval time.Duration // Background refresh interval
}

// Anonymous reports whether credentials are absent. Absence is not an
// error; the client operates read-only.
func (c Config) Anonymous() bool {
	return c.Identifier == "" || c.AppPassword == ""
}

// Load reads configuration from environment variables.
//
//	SKYTHREAD_SERVICE       — PDS base URL (default: https://bsky.social)
//	SKYTHREAD_IDENTIFIER    — Handle or email for login (optional)
//	SKYTHREAD_APP_PASSWORD  — App password for login (optional)
//	SKYTHREAD_POST          — Post URL or {{bluesky:URL}} block (required
//	                          unless passed as a CLI argument)
//	SKYTHREAD_POLL_INTERVAL — Refresh interval, Go duration (default: 60s)
func Load() (Config, error) {
	service := os.Getenv("SKYTHREAD_SERVICE")
	if service == "" {
		service = "https://bsky.social"
	}
	parsed, err := url.Parse(service)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid SKYTHREAD_SERVICE: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid SKYTHREAD_SERVICE: only https is allowed")
	}
	service = strings.TrimRight(parsed.String(), "/")

	interval := 60 * time.Second
	if raw := os.Getenv("SKYTHREAD_POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SKYTHREAD_POLL_INTERVAL: %q", raw)
		}
		interval = d
	}

	return Config{
		ServiceURL:   service,
		Identifier:   strings.TrimSpace(os.Getenv("SKYTHREAD_IDENTIFIER")),
		AppPassword:  strings.TrimSpace(os.Getenv("SKYTHREAD_APP_PASSWORD")),
		Post:         strings.TrimSpace(os.Getenv("SKYTHREAD_POST")),
		PollInterval: interval,
	}, nil
}
