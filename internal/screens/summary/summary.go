// Package summary is shown in the finished state: the passing quiz score
// with a per-question review.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/ui/layout"
	"github.com/abhisek/voltquest/internal/ui/theme"
)

// SummaryScreen displays the final result.
type SummaryScreen struct {
	game   *game.Game
	result *quiz.Result
	prompt map[string]string // question id → prompt
	errMsg string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the game's last quiz result.
func New(g *game.Game, bank []quiz.Question) *SummaryScreen {
	prompts := make(map[string]string, len(bank))
	for _, q := range bank {
		prompts[q.ID] = q.Prompt
	}
	return &SummaryScreen{game: g, result: g.LastResult(), prompt: prompts}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quest Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Menu"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			if err := s.game.BackToMenu(); err != nil {
				s.errMsg = err.Error()
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("★ Every room is energy-smart! ★"))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n\n")
	}

	r := s.result
	if r == nil {
		return b.String()
	}

	b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Quiz score: %d/%d (%.0f%%)", r.Correct, r.Total, r.Percent)))
	b.WriteString("\n\n")

	cw := min(width-4, 72)
	for i, item := range r.Items {
		mark := theme.Correct.Render("✓")
		switch {
		case item.Chosen == quiz.Unanswered:
			mark = lipgloss.NewStyle().Foreground(theme.Warning).Render("⏱")
		case !item.Correct:
			mark = theme.Incorrect.Render("✗")
		}
		prompt := s.prompt[item.QuestionID]
		if prompt == "" {
			prompt = item.QuestionID
		}
		line := fmt.Sprintf("%s %d. %s", mark, i+1, prompt)
		b.WriteString(layout.Centered(width, theme.Body.Width(cw).Render(line)))
		b.WriteString("\n")
		if item.Explanation != "" {
			b.WriteString(layout.Centered(width,
				lipgloss.NewStyle().Width(cw).PaddingLeft(5).Foreground(theme.TextDim).Render(item.Explanation)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
