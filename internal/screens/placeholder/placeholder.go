// Package placeholder renders states that have no dedicated screen.
package placeholder

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/ui/layout"
	"github.com/abhisek/voltquest/internal/ui/theme"
)

// PlaceholderScreen names the active state and offers a way out.
type PlaceholderScreen struct {
	title  string
	onBack func() error
	errMsg string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen. onBack runs on Esc; it may be nil.
func New(title string, onBack func() error) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, onBack: onBack}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	if p.onBack == nil {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Menu"}, {Key: "Ctrl+C", Description: "Quit"}}
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" && p.onBack != nil {
		if err := p.onBack(); err != nil {
			p.errMsg = err.Error()
		}
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	text := fmt.Sprintf("╌╌ %s ╌╌\n\nNothing to show here yet.", p.title)
	if p.errMsg != "" {
		text += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg)
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(text)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
