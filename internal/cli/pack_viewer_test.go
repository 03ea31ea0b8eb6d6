package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/brp/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func longContent(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %03d", i)
	}
	return strings.Join(lines, "\n")
}

func TestPackViewer_ScrollsAndQuits(t *testing.T) {
	d := teatest.New(t, newPackViewer("000001 · Demo", longContent(100)), teatest.WithSize(80, 12))
	d.DrainInit()

	d.RequireViewContains("000001 · Demo")
	d.RequireViewContains("[TOP]")
	d.RequireViewContains("line 000")

	d.PressTimes(tea.KeyDown, 3)
	assert.NotContains(t, d.PlainView(), "line 000")
	d.RequireViewContains("line 003")

	d.PressKey('G')
	d.RequireViewContains("[END]")
	d.RequireViewContains("line 099")

	d.PressKey('g')
	d.RequireViewContains("line 000")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestPackViewer_LoadingUntilSized(t *testing.T) {
	d := teatest.New(t, newPackViewer("x", "body"))
	assert.Equal(t, "Loading…", d.View())
	d.Press(tea.KeyDown)
	assert.False(t, d.Quitting)
	d.Press(tea.KeyEsc)
	assert.True(t, d.Quitting)
}
