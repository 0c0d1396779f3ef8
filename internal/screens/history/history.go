// Package history shows recorded quiz statistics and the most recent state
// transitions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/router"
	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/store"
	"github.com/abhisek/voltquest/internal/ui/layout"
	"github.com/abhisek/voltquest/internal/ui/theme"
)

// Limit caps how many transitions are loaded.
const Limit = 50

type historyLoadedMsg struct {
	Stats       *store.QuizStats
	Transitions []store.TransitionRecord
	Err         error
}

// HistoryScreen displays quiz stats and past transitions.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	stats       *store.QuizStats
	transitions []store.TransitionRecord
	offset      int
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := s.eventRepo.QuizStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		transitions, err := s.eventRepo.RecentTransitions(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Stats: stats, Err: err}
		}
		return historyLoadedMsg{Stats: stats, Transitions: transitions}
	}
}

func (s *HistoryScreen) Title() string {
	return "Stats"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.stats = msg.Stats
		s.transitions = msg.Transitions
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.transitions)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading stats...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(s.renderStats()))
	b.WriteString("\n\n")

	if len(s.transitions) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).
			Render("No moves recorded yet. Go save some energy!"))
		return b.String()
	}

	b.WriteString(theme.Title.Width(width).Render("Recent moves"))
	b.WriteString("\n")

	// Leave room for the stats card and headings.
	rows := max(1, height-8)
	end := min(len(s.transitions), s.offset+rows)
	for _, tr := range s.transitions[s.offset:end] {
		from := tr.From
		if from == "" {
			from = "start"
		}
		line := fmt.Sprintf("#%-4d %s  %s → %s",
			tr.Sequence, tr.Timestamp.Local().Format("Jan 02 15:04"), from, tr.To)
		b.WriteString(center.Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *HistoryScreen) renderStats() string {
	st := s.stats
	if st == nil || st.Attempts == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("No quiz attempts yet")
	}
	lines := []string{
		fmt.Sprintf("Quiz attempts: %d (%d passed)", st.Attempts, st.Passed),
		fmt.Sprintf("Best score: %.0f%%   Average: %.0f%%", st.BestPercent, st.AveragePercent),
		fmt.Sprintf("Last attempt: %s", st.LastAttempt.Local().Format("Jan 02, 2006 15:04")),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}
