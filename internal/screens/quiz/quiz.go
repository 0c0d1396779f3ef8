// Package quiz runs the closing quiz: one multiple-choice question at a
// time, each with its own countdown.
package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
	"github.com/abhisek/voltquest/internal/screen"
	"github.com/abhisek/voltquest/internal/ui/components"
	"github.com/abhisek/voltquest/internal/ui/layout"
	"github.com/abhisek/voltquest/internal/ui/theme"
)

// DefaultQuestionTime is the countdown for each question.
const DefaultQuestionTime = 30 * time.Second

const tickInterval = time.Second

type phase int

const (
	phaseRetry phase = iota // showing the failed attempt that led here
	phaseQuestion
	phaseFeedback
)

// tickMsg carries the question generation it was scheduled for so ticks
// from an answered question are dropped.
type tickMsg struct {
	gen int
}

// QuizScreen drives one quiz attempt.
type QuizScreen struct {
	game         *game.Game
	questionTime time.Duration

	session   *quiz.Session
	index     int
	responses []int
	mc        components.MultiChoice
	remaining time.Duration
	gen       int
	timedOut  bool

	phase    phase
	previous *quiz.Result
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. A non-positive questionTime uses
// DefaultQuestionTime.
func New(g *game.Game, questionTime time.Duration) *QuizScreen {
	if questionTime <= 0 {
		questionTime = DefaultQuestionTime
	}
	s := &QuizScreen{game: g, questionTime: questionTime, phase: phaseQuestion}
	if last := g.LastResult(); last != nil && !last.Passed {
		s.previous = last
		s.phase = phaseRetry
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.phase == phaseRetry {
		return nil
	}
	return s.start()
}

func (s *QuizScreen) start() tea.Cmd {
	sess, err := s.game.StartQuiz()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.session = sess
	s.index = 0
	s.responses = make([]int, sess.Len())
	for i := range s.responses {
		s.responses[i] = quiz.Unanswered
	}
	return s.ask()
}

func (s *QuizScreen) ask() tea.Cmd {
	q, ok := s.session.Question(s.index)
	if !ok {
		return nil
	}
	s.mc = components.NewMultiChoice(q.Prompt, q.Answers, q.CorrectAnswerIndex)
	s.remaining = s.questionTime
	s.timedOut = false
	s.phase = phaseQuestion
	s.gen++
	return s.tick()
}

func (s *QuizScreen) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (s *QuizScreen) Title() string {
	return "Energy Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseRetry:
		return []layout.KeyHint{{Key: "Enter", Description: "Try again"}, {Key: "Esc", Description: "Menu"}}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Menu"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Menu"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg tickMsg) tea.Cmd {
	if s.phase != phaseQuestion || msg.gen != s.gen {
		return nil
	}
	s.remaining -= tickInterval
	if s.remaining > 0 {
		return s.tick()
	}
	s.remaining = 0
	s.timedOut = true
	s.responses[s.index] = quiz.Unanswered
	s.phase = phaseFeedback
	return nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		if err := s.game.BackToMenu(); err != nil {
			s.errMsg = err.Error()
		}
		return nil
	}

	switch s.phase {
	case phaseRetry:
		if msg.String() == "enter" {
			return s.start()
		}
	case phaseQuestion:
		if s.session == nil {
			return nil
		}
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			s.responses[s.index] = s.mc.ChosenIndex
			s.phase = phaseFeedback
		}
		return cmd
	case phaseFeedback:
		if msg.String() == "enter" {
			return s.advance()
		}
	}
	return nil
}

// advance moves to the next question or submits the attempt. Submitting
// changes the game state, after which the router replaces this screen.
func (s *QuizScreen) advance() tea.Cmd {
	if s.index+1 < s.session.Len() {
		s.index++
		return s.ask()
	}
	if _, err := s.game.SubmitQuiz(s.responses); err != nil {
		s.errMsg = err.Error()
	}
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	cw := min(width-4, 72)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if s.phase == phaseRetry {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.renderRetry())
	}
	q, ok := quiz.Question{}, false
	if s.session != nil {
		q, ok = s.session.Question(s.index)
	}
	if !ok {
		return center.Foreground(theme.TextDim).Render("\n\n  Preparing questions...")
	}

	var sections []string

	header := fmt.Sprintf("Question %d of %d · %s", s.index+1, s.session.Len(), q.Category)
	sections = append(sections, theme.Subtitle.Render(header))

	timerStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	if s.remaining <= 5*time.Second {
		timerStyle = timerStyle.Foreground(theme.Error)
	}
	sections = append(sections, timerStyle.Render(fmt.Sprintf("⏱ %ds", int(s.remaining/time.Second))))

	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(s.mc.View()))

	if s.phase == phaseFeedback {
		sections = append(sections, s.renderFeedback(q, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n\n"))
}

func (s *QuizScreen) renderFeedback(q quiz.Question, cw int) string {
	var verdict string
	switch {
	case s.timedOut:
		verdict = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).
			Render("Time's up! The answer was: " + q.CorrectAnswer())
	case s.mc.IsCorrect():
		verdict = theme.Correct.Bold(true).Render("Correct!")
	default:
		verdict = theme.Incorrect.Bold(true).Render("Not quite. The answer was: " + q.CorrectAnswer())
	}
	if q.Explanation == "" {
		return verdict
	}
	return verdict + "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(q.Explanation)
}

func (s *QuizScreen) renderRetry() string {
	r := s.previous
	lines := []string{
		theme.Incorrect.Bold(true).Render(fmt.Sprintf("You scored %d/%d (%.0f%%)", r.Correct, r.Total, r.Percent)),
		lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("You need %.0f%% to pass. Ready for another round?", s.game.PassPercent())),
		"",
		components.NewButton("TRY AGAIN", true).View(),
	}
	return strings.Join(lines, "\n")
}
