// Package room is the level screen: the player switches appliances and
// trims their hours until the projected monthly bill meets the target.
package room

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/shopspring/decimal"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/gameerr"
	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/ui/components"
	"github.com/abhisek/voltquest/internal/ui/layout"
	"github.com/abhisek/voltquest/internal/ui/theme"
)

// RoomScreen shows the active level.
type RoomScreen struct {
	game *game.Game
	keys keyMap

	level       game.Level
	report      *consumption.Report
	suggestions []consumption.Suggestion
	selected    int
	showTips    bool

	editing bool
	input   components.TextInput

	notice  string
	isError bool
}

var _ screen.Screen = (*RoomScreen)(nil)
var _ screen.KeyHintProvider = (*RoomScreen)(nil)

// New creates a RoomScreen for the game's active level.
func New(g *game.Game) *RoomScreen {
	s := &RoomScreen{game: g, keys: defaultKeys()}
	s.refresh()
	return s
}

func (s *RoomScreen) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *RoomScreen) Title() string {
	if s.level.Title == "" {
		return "Room"
	}
	return s.level.Title
}

func (s *RoomScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "0-9 .", Description: "Hours"},
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return s.keys.hints()
}

// refresh reloads the level and derived report after every change.
func (s *RoomScreen) refresh() {
	lvl, err := s.game.CurrentLevel()
	if err != nil {
		s.setError(err)
		return
	}
	s.level = lvl
	s.report, err = s.game.Report()
	if err != nil {
		s.setError(err)
		return
	}
	if s.showTips {
		s.suggestions, err = s.game.Suggestions()
		if err != nil {
			s.setError(err)
		}
	}
	s.selected = max(0, min(s.selected, len(s.level.Appliances)-1))
}

func (s *RoomScreen) setError(err error) {
	s.notice = err.Error()
	var invalid *gameerr.InvalidArgumentError
	if errors.As(err, &invalid) {
		s.notice = invalid.Reason
	}
	s.isError = true
}

func (s *RoomScreen) setNotice(msg string) {
	s.notice = msg
	s.isError = false
}

func (s *RoomScreen) current() (consumption.Appliance, bool) {
	if s.selected < 0 || s.selected >= len(s.level.Appliances) {
		return consumption.Appliance{}, false
	}
	return s.level.Appliances[s.selected], true
}

func (s *RoomScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, s.keys.Up):
		if s.selected > 0 {
			s.selected--
		}
	case key.Matches(kmsg, s.keys.Down):
		if s.selected < len(s.level.Appliances)-1 {
			s.selected++
		}
	case key.Matches(kmsg, s.keys.Toggle):
		if a, ok := s.current(); ok {
			if err := s.game.Toggle(a.Name); err != nil {
				s.setError(err)
			} else {
				s.notice = ""
			}
			s.refresh()
		}
	case key.Matches(kmsg, s.keys.Hours):
		if a, ok := s.current(); ok {
			s.editing = true
			s.input = components.NewTextInput(fmt.Sprintf("%g", a.HoursPerDay), true, 5)
			return s, s.input.Init()
		}
	case key.Matches(kmsg, s.keys.Tips):
		s.showTips = !s.showTips
		s.refresh()
	case key.Matches(kmsg, s.keys.Check):
		return s, s.check()
	case key.Matches(kmsg, s.keys.Back):
		if err := s.game.BackToMenu(); err != nil {
			s.setError(err)
		}
	}
	return s, nil
}

func (s *RoomScreen) updateEditing(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.editing = false
			return s, nil
		case "enter":
			s.editing = false
			a, ok := s.current()
			if !ok {
				return s, nil
			}
			hours, err := s.input.FloatValue()
			if err != nil {
				s.setError(fmt.Errorf("%q is not a number of hours", s.input.Value()))
				return s, nil
			}
			if err := s.game.SetHours(a.Name, hours); err != nil {
				s.setError(err)
			} else {
				s.setNotice(fmt.Sprintf("%s now runs %g h/day", a.Name, hours))
			}
			s.refresh()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// check asks the game to complete the level. On success the game moves to
// the next state and the router swaps this screen out.
func (s *RoomScreen) check() tea.Cmd {
	r, ok, err := s.game.TryComplete()
	if err != nil {
		s.setError(err)
		return nil
	}
	if !ok {
		over := r.TotalMonthlyBill.Sub(r.TargetBill)
		s.report = r
		s.notice = fmt.Sprintf("Still %s over the target. Keep trimming!", components.Rupiah(over))
		s.isError = true
	}
	return nil
}

func (s *RoomScreen) View(width, height int) string {
	cw := min(width-4, 72)
	var sections []string

	if s.level.Hint != "" {
		sections = append(sections, theme.Hint.Width(cw).Render(s.level.Hint))
	}
	sections = append(sections, s.renderAppliances())
	if s.report != nil {
		sections = append(sections, layout.Divider(cw), s.renderReport(cw))
	}
	if s.editing {
		if a, ok := s.current(); ok {
			sections = append(sections, fmt.Sprintf("Hours per day for %s: %s", a.Name, s.input.View()))
		}
	}
	if s.showTips {
		sections = append(sections, s.renderTips(cw))
	}
	if s.notice != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.isError {
			style = style.Foreground(theme.Error)
		}
		sections = append(sections, style.Render(s.notice))
	}
	sections = append(sections, components.NewButton("CHECK BILL", s.report != nil && s.report.WithinTarget).View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *RoomScreen) renderAppliances() string {
	var b strings.Builder
	for i, a := range s.level.Appliances {
		status := "OFF"
		if a.IsOn {
			status = "ON "
		}
		tag := ""
		if a.Essential {
			tag = " (essential)"
		}
		cost := ""
		if s.report != nil && i < len(s.report.Breakdown) && a.IsOn {
			cost = components.Rupiah(s.report.Breakdown[i].MonthlyCost)
		}
		line := fmt.Sprintf("%s %-18s %5.0f W %5.1f h  %-14s%s",
			status, a.Name, a.PowerWatts, a.HoursPerDay, cost, tag)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = theme.Selected
			line = "▸ " + line
		case !a.IsOn:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
			line = "  " + line
		default:
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *RoomScreen) renderReport(cw int) string {
	r := s.report
	fraction := 0.0
	if r.TargetBill.IsPositive() {
		fraction = r.TotalMonthlyBill.Div(r.TargetBill).InexactFloat64()
	}
	bar := components.NewProgressBar("Bill vs target", fraction, true, cw)

	rating := lipgloss.NewStyle().
		Foreground(theme.SeverityColor(r.Rating.Severity)).
		Bold(true).
		Render(strings.ToUpper(r.Rating.Label))

	status := lipgloss.NewStyle().Foreground(theme.Error).Render("over target")
	if r.WithinTarget {
		status = lipgloss.NewStyle().Foreground(theme.Success).Render("within target ✓")
	}

	lines := []string{
		fmt.Sprintf("Monthly bill %s / target %s  %s",
			components.Rupiah(r.TotalMonthlyBill), components.Rupiah(r.TargetBill), status),
		fmt.Sprintf("%.2f kWh/day · %.1f kWh/month · rating %s", r.TotalDailyKwh, r.TotalMonthlyKwh, rating),
		bar.View(),
	}
	return strings.Join(lines, "\n")
}

func (s *RoomScreen) renderTips(cw int) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeCyan)
	if len(s.suggestions) == 0 {
		return style.Render("No tips: everything left on is already lean.")
	}
	lines := []string{style.Bold(true).Render("Tips")}
	for _, sg := range s.suggestions {
		saving := decimal.Max(sg.PotentialSaving, decimal.Zero)
		lines = append(lines, style.Render(fmt.Sprintf("• %s: %g h → %g h saves %s/month",
			sg.Appliance, sg.CurrentHours, sg.SuggestedHours, components.Rupiah(saving))))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}
