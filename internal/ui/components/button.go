package components

import (
	"github.com/abhisek/voltquest/internal/ui/theme"

	"charm.land/lipgloss/v2"
)

// Button renders a call-to-action label. Active buttons are highlighted.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

var (
	buttonActive = lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.BgDark).
			Bold(true).
			Padding(0, 2)

	buttonInactive = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2)
)

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return buttonActive.Render("▸ " + b.Label)
	}
	return buttonInactive.Render(b.Label)
}
