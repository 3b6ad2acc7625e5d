package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/manifest"
)

// Styles accepted by Markdown. StylePlain emits no escape sequences.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

// DefaultWidth is the wrap width used when none is given.
const DefaultWidth = 80

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Width(16)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1)
)

// Markdown renders md for a terminal of the given width.
func Markdown(md, style string, width int) (string, error) {
	if style == "" {
		style = StylePlain
	}
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Summary is the data shown by Card.
type Summary struct {
	App      *manifest.AppManifest
	Agent    *manifest.DeclarativeAgent
	Entries  []string
	Warnings []string
}

// Card renders s as a bordered block.
func Card(s Summary) string {
	var lines []string
	lines = append(lines, titleStyle.Render(displayName(s)))
	lines = append(lines, "")

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		lines = append(lines, labelStyle.Render(label)+value)
	}

	if s.App != nil {
		row("App", s.App.Name.Short)
		row("App id", s.App.ID)
		row("Manifest", s.App.ManifestVersion)
	}
	if s.Agent != nil {
		row("Agent file", s.Agent.Source)
		row("Schema", s.Agent.Version)
		row("Starters", fmt.Sprint(len(s.Agent.ConversationStarters)))
		row("Capabilities", capabilityNames(s.Agent.Capabilities))
	}
	row("Entries", fmt.Sprint(len(s.Entries)))

	if len(s.Warnings) > 0 {
		lines = append(lines, "")
		for _, w := range s.Warnings {
			lines = append(lines, warningStyle.Render("! "+w))
		}
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func displayName(s Summary) string {
	if s.Agent != nil && s.Agent.Name != "" {
		return s.Agent.Name
	}
	if s.App != nil && s.App.Name.Short != "" {
		return s.App.Name.Short
	}
	return "Unnamed agent"
}

func capabilityNames(caps []manifest.Capability) string {
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		if n := c.Name(); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}
