package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a record status.
func StatusColor(st domain.Status) lipgloss.Style {
	switch st {
	case domain.StatusComplete:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusDraft:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(st domain.Status) string {
	switch st {
	case domain.StatusComplete:
		return StyleGreen.Render("✔ Complete")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusDraft:
		return StyleBlue.Render("○ Draft")
	default:
		return StyleDim.Render(string(st))
	}
}

// GateBadge renders "G3 Options Analysis" in purple.
func GateBadge(g int) string {
	def := domain.Gate(g)
	return StylePurple.Render(fmt.Sprintf("G%d %s", def.Number, def.Short))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
