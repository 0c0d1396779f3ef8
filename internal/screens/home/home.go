// Package home renders the menu state: progress so far and the entry points
// into play, stats and exit.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/router"
	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/screens/history"
	"github.com/abhisek/voltquest/internal/store"
	"github.com/abhisek/voltquest/internal/ui/components"
	"github.com/abhisek/voltquest/internal/ui/layout"
)

// HomeScreen is shown while the game sits in the menu state.
type HomeScreen struct {
	game       *game.Game
	menu       components.Menu
	disabled   map[int]bool
	roomsDone  int
	roomsTotal int
	bestQuiz   float64
	attempts   int
	finished   bool
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. events may be nil, in which case STATS is disabled.
func New(g *game.Game, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{game: g, disabled: map[int]bool{}}

	p := g.Progress()
	h.roomsTotal = len(g.Levels())
	for _, id := range p.Completed {
		if g.IsLevel(id) {
			h.roomsDone++
		} else if id == game.StateQuiz {
			h.finished = true
		}
	}
	h.bestQuiz = p.BestQuizPercent
	h.attempts = p.QuizAttempts

	items := []components.MenuItem{
		{Label: "PLAY", Action: func() tea.Cmd {
			if err := g.Play(); err != nil {
				h.errMsg = err.Error()
			}
			return nil
		}},
		{Label: "STATS", Disabled: events == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(events)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	for i, item := range items {
		h.disabled[i] = item.Disabled
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(width, cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.roomsDone, h.roomsTotal, h.bestQuiz, h.attempts, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menu.Labels(), h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, cw, h.disabled))
	}
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.finished:
		return MascotCharged
	case h.attempts > 0:
		return MascotFlicker
	default:
		return MascotIdle
	}
}
