package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type packViewerKeys struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func (k packViewerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.PageDown, k.Top, k.Bottom, k.Quit}
}

func (k packViewerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.PageUp, k.PageDown}, {k.Top, k.Bottom, k.Quit}}
}

func defaultPackViewerKeys() packViewerKeys {
	return packViewerKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// packViewer is a full-screen scrollable view of a rendered governance pack.
type packViewer struct {
	title   string
	content string
	vp      viewport.Model
	keys    packViewerKeys
	help    help.Model
	ready   bool
}

func newPackViewer(title, content string) packViewer {
	return packViewer{
		title:   title,
		content: content,
		keys:    defaultPackViewerKeys(),
		help:    help.New(),
	}
}

func (m packViewer) Init() tea.Cmd { return nil }

func (m packViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bodyHeight := msg.Height - 2
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, bodyHeight)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = bodyHeight
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case !m.ready:
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.vp.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.vp.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.vp.ViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.vp.ViewDown()
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
		}
		return m, nil
	}
	return m, nil
}

func (m packViewer) View() string {
	if !m.ready {
		return "Loading…"
	}
	header := formatter.StyleHeader.Render(m.title) + "  " + scrollIndicator(m.vp)
	return strings.Join([]string{header, m.vp.View(), m.help.View(m.keys)}, "\n")
}

// scrollIndicator returns a dim scroll position string for the header.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
