package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"skythread/infra/bsky"
	"skythread/infra/config"
	"skythread/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

// parseCLIArgs sorts flags from the optional positional post URL, which
// takes precedence over SKYTHREAD_POST.
func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	}
	if strings.HasPrefix(args[0], "-") || len(args) > 1 {
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
	return cliRun, args[0]
}

func usage() string {
	return "Usage: skythread [POST_URL] [--version|-version|-v] [--help|-h]\n" +
		"POST_URL may be a https://bsky.app/... link or a {{bluesky:URL}} block;\n" +
		"it can also come from SKYTHREAD_POST."
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, arg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("skythread %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", arg, usage())
		os.Exit(1)
	}

	// 1. Load config from environment; a positional URL wins over it.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	post := cfg.Post
	if arg != "" {
		post = arg
	}

	// 2. Resolve the target post before touching the network.
	rawURL, err := bsky.ExtractDirectiveURL(post)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post url: %v\n%s\n", err, usage())
		os.Exit(1)
	}
	ref, err := bsky.ResolvePostURL(rawURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post url: %v\n", err)
		os.Exit(1)
	}

	// 3. Build infrastructure. A failed login degrades to read-only
	// instead of aborting; the thread is still viewable.
	client := bsky.NewClient(cfg.ServiceURL)
	if !cfg.Anonymous() {
		if err := client.Login(context.Background(), cfg.Identifier, cfg.AppPassword); err != nil {
			fmt.Fprintf(os.Stderr, "login failed, continuing read-only: %v\n", err)
		}
	}

	// 4. Build services and wire the root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Threads:      bsky.NewThreadService(client),
		Replies:      bsky.NewReplyService(client),
		Ref:          ref,
		Anonymous:    !client.Session().Authenticated,
		PollInterval: cfg.PollInterval,
	})

	// 5. Run. Focus reporting feeds the focus-triggered refresh.
	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "skythread: %v\n", err)
		os.Exit(1)
	}
}
