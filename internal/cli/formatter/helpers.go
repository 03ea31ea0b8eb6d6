package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// OrDash returns s, or a dimmed "--" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

// DateText renders a gate date, dimming malformed ones.
func DateText(d domain.Date) string {
	switch {
	case d.IsZero():
		return Dim("--")
	case !d.Valid():
		return StyleYellow.Render(d.String() + "?")
	default:
		return d.String()
	}
}

// YesNo renders a realization flag.
func YesNo(v bool) string {
	if v {
		return StyleGreen.Render("Yes")
	}
	return StyleDim.Render("No")
}

// HumanTimestampFrom renders t relative to now: "Just now", "5m ago",
// "3h ago", then an absolute date.
func HumanTimestampFrom(t, now time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// HumanTimestamp is HumanTimestampFrom against the wall clock.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// Truncate shortens s to max visible characters with a trailing ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
