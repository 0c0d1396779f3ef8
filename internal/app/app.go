// Package app is the Bubble Tea root model. It owns the router, keeps the
// bottom screen in step with the game's state machine and draws the frame.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/fsm"
	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/router"
	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/screens/home"
	"github.com/abhisek/voltquest/internal/screens/placeholder"
	quizscreen "github.com/abhisek/voltquest/internal/screens/quiz"
	"github.com/abhisek/voltquest/internal/screens/room"
	"github.com/abhisek/voltquest/internal/screens/summary"
	"github.com/abhisek/voltquest/internal/screens/welcome"
	"github.com/abhisek/voltquest/internal/store"
	"github.com/abhisek/voltquest/internal/ui/layout"
)

// frameInterval is how often the active state's update hook runs.
const frameInterval = time.Second

// Options configures the TUI.
type Options struct {
	// Game must be started (or resumed) before Run.
	Game *game.Game

	// Bank lets the summary screen show question prompts.
	Bank []quiz.Question

	// EventRepo backs the stats screen; nil disables it.
	EventRepo store.EventRepo

	// QuestionTime is the quiz countdown per question.
	QuestionTime time.Duration

	// SkipSplash starts directly on the active state's screen.
	SkipSplash bool

	Logger *slog.Logger
}

type frameMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts      Options
	router    *router.Router
	lastFrame time.Time
	width     int
	height    int
}

// newAppModel creates the root model and subscribes the router to the game.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := AppModel{opts: opts}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = m.screenFor(opts.Game.Current())
	} else {
		initial = welcome.New(func() screen.Screen {
			return m.screenFor(opts.Game.Current())
		})
	}
	m.router = router.New(initial)
	m.router.Follow(opts.Game.Machine(), m.screenFor)
	return m
}

// screenFor maps a state to its screen.
func (m AppModel) screenFor(id fsm.StateID) screen.Screen {
	g := m.opts.Game
	switch {
	case id == game.StateMenu:
		return home.New(g, m.opts.EventRepo)
	case g.IsLevel(id):
		return room.New(g)
	case id == game.StateQuiz:
		return quizscreen.New(g, m.opts.QuestionTime)
	case id == game.StateFinished:
		return summary.New(g, m.opts.Bank)
	}
	m.opts.Logger.Warn("no screen for state", "state", id)
	return placeholder.New(string(id), g.BackToMenu)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), frame())
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.opts.Game.Update(now.Sub(m.lastFrame))
		}
		m.lastFrame = now
		return m, tea.Batch(m.router.Flush(), frame())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status summarises progress for the header.
func (m AppModel) status() layout.Status {
	g := m.opts.Game
	p := g.Progress()
	st := layout.Status{RoomsTotal: len(g.Levels()), BestQuiz: p.BestQuizPercent}
	for _, id := range p.Completed {
		if g.IsLevel(id) {
			st.RoomsDone++
		}
	}
	return st
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Game == nil {
		return fmt.Errorf("app: game is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
