package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0A7AFF")).
			Padding(1, 2, 0, 1)

	// AuthorStyle styles a post author's display name.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// HandleStyle styles the author handle shown next to the name.
	HandleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8E8E8E")).
			Faint(true)

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles post body text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// LinkStyle styles link segments inside post text.
	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#89B4FA")).
			Underline(true)

	// MentionStyle styles mention segments inside post text.
	MentionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C6A0F6"))

	// SelectedStyle highlights the currently selected post card.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0A7AFF")).
			Padding(0, 1)

	// UnselectedStyle gives unselected post cards a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// QuoteStyle frames an embedded quoted post.
	QuoteStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#45475A")).
			PaddingLeft(1).
			Faint(true)

	// MediaStyle styles image attachment placeholders.
	MediaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BD5CA")).
			Faint(true)

	// NoticeStyle styles the new-replies notification banner.
	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")).
			Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
