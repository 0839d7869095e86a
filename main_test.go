package main

import (
	"testing"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		arg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "positional post url", args: []string{"https://bsky.app/profile/a.bsky.social/post/3k"}, mode: cliRun, arg: "https://bsky.app/profile/a.bsky.social/post/3k"},
		{name: "directive block", args: []string{"{{bluesky:https://bsky.app/profile/a/post/3k}}"}, mode: cliRun, arg: "{{bluesky:https://bsky.app/profile/a/post/3k}}"},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, arg: "unexpected argument: --bogus"},
		{name: "too many positionals", args: []string{"url1", "url2"}, mode: cliInvalid, arg: "unexpected argument: url1 url2"},
		{name: "version wins over extras", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, arg := parseCLIArgs(tc.args)
			if mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", mode, tc.mode)
			}
			if tc.arg != "" && arg != tc.arg {
				t.Fatalf("arg mismatch: got %q want %q", arg, tc.arg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	settings := map[string]string{
		"vcs.revision": "0123456789abcdef0123",
		"vcs.time":     "2026-08-27T10:00:00Z",
	}

	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", settings)
	if v != "v1.2.3" || c != "0123456789ab" || d != "2026-08-27T10:00:00Z" {
		t.Fatalf("build info not applied: %s %s %s", v, c, d)
	}

	// Linker-provided values are authoritative.
	v, c, d = resolveVersionInfo("v2.0.0", "deadbeef", "yesterday", "v1.2.3", settings)
	if v != "v2.0.0" || c != "deadbeef" || d != "yesterday" {
		t.Fatalf("linker values must win: %s %s %s", v, c, d)
	}

	// A devel module version is not a release.
	if v, _, _ := resolveVersionInfo("dev", "none", "unknown", "(devel)", nil); v != "dev" {
		t.Fatalf("(devel) must not replace dev, got %s", v)
	}
}
