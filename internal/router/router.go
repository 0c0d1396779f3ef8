// Package router keeps the stack of screens shown by the TUI and can follow
// a state machine so the bottom screen always matches the active state.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/voltquest/internal/fsm"
	"github.com/abhisek/voltquest/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Factory builds the screen for a machine state.
type Factory func(fsm.StateID) screen.Screen

// Router manages a stack of screens.
type Router struct {
	stack   []screen.Screen
	pending screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Reset drops every screen and makes s the only one.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Follow subscribes to m's stateEnter events. Each entered state replaces
// the whole stack with the screen built by factory. Transitions usually
// happen while a screen is handling a message, so the swap is applied once
// that screen's Update returns. The returned id unsubscribes via m.Off.
func (r *Router) Follow(m *fsm.Machine, factory Factory) fsm.ListenerID {
	return m.On(fsm.EventStateEnter, func(ev fsm.Event) {
		if s := factory(ev.To); s != nil {
			r.pending = s
		}
	})
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return tea.Batch(cmd, r.flush())
}

// Flush applies a screen switch requested by the followed machine outside
// of Update, for example after the host starts the game.
func (r *Router) Flush() tea.Cmd {
	return r.flush()
}

func (r *Router) flush() tea.Cmd {
	if r.pending == nil {
		return nil
	}
	s := r.pending
	r.pending = nil
	return r.Reset(s)
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
