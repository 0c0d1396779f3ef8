package fsm

import (
	"slices"
	"time"
)

// EventName identifies an observable event.
type EventName string

// Lifecycle events emitted by ChangeState, in this order.
const (
	EventStateExit   EventName = "stateExit"
	EventStateEnter  EventName = "stateEnter"
	EventStateChange EventName = "stateChange"
)

// Event is delivered to listeners.
type Event struct {
	Name EventName
	From StateID
	To   StateID
	At   time.Time
}

// Listener observes events. Listeners run synchronously on the caller's
// goroutine; a panicking listener is recovered and logged.
type Listener func(Event)

// ListenerID identifies a subscription for Off.
type ListenerID uint64

type subscription struct {
	id ListenerID
	fn Listener
}

// On subscribes fn to name and returns an id for Off.
func (m *Machine) On(name EventName, fn Listener) ListenerID {
	m.nextListener++
	id := m.nextListener
	m.listeners[name] = append(m.listeners[name], subscription{id: id, fn: fn})
	return id
}

// Off removes a subscription. It reports whether one was removed.
func (m *Machine) Off(name EventName, id ListenerID) bool {
	subs := m.listeners[name]
	i := slices.IndexFunc(subs, func(s subscription) bool { return s.id == id })
	if i < 0 {
		return false
	}
	m.listeners[name] = slices.Delete(slices.Clone(subs), i, i+1)
	return true
}

// Emit delivers ev to every listener of ev.Name. A zero At is stamped with
// the machine's clock.
func (m *Machine) Emit(ev Event) {
	if ev.At.IsZero() {
		ev.At = m.now()
	}
	// Snapshot so listeners may subscribe or unsubscribe while dispatching.
	subs := slices.Clone(m.listeners[ev.Name])
	for _, s := range subs {
		m.dispatch(s, ev)
	}
}

func (m *Machine) dispatch(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("fsm listener panicked",
				"event", string(ev.Name),
				"listener", uint64(s.id),
				"from", string(ev.From),
				"to", string(ev.To),
				"panic", r,
			)
		}
	}()
	s.fn(ev)
}
