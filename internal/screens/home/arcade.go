package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/screens/welcome"
	"github.com/abhisek/voltquest/internal/ui/components"
	"github.com/abhisek/voltquest/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(width, cw int, compact bool) string {
	bw := width
	if compact {
		bw = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(bw))
}

// renderStatsBar renders rooms cleared and quiz results in a double-bordered box.
func renderStatsBar(done, total int, best float64, attempts, cw int, compact bool) string {
	roomStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			roomStyle.Render(fmt.Sprintf("⌂%d/%d", done, total)),
			quizText(best, attempts, true, quizStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			roomStyle.Render(fmt.Sprintf("⌂ %d/%d ROOMS", done, total)),
			quizText(best, attempts, false, quizStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func quizText(best float64, attempts int, compact bool, active, dim lipgloss.Style) string {
	if attempts == 0 {
		if compact {
			return dim.Render("★-")
		}
		return dim.Render("★ NO QUIZ YET")
	}
	if compact {
		return active.Render(fmt.Sprintf("★%.0f%%", best))
	}
	return active.Render(fmt.Sprintf("★ BEST %.0f%% (%d TRIES)", best, attempts))
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected, cw int, disabled map[int]bool) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.ArcadeButton(label, i == selected, disabled[i], buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}
