package fsm

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/voltquest/internal/gameerr"
)

// recorder collects hook and event calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

func (r *recorder) state(id StateID) State {
	return State{
		ID:       id,
		OnEnter:  func() { r.add("enter:" + string(id)) },
		OnExit:   func() { r.add("exit:" + string(id)) },
		OnUpdate: func(dt time.Duration) { r.add("update:" + string(id) + ":" + dt.String()) },
	}
}

func fixedClock() func() time.Time {
	t := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newABC(t *testing.T, rec *recorder, opts ...Option) *Machine {
	t.Helper()
	m := New(append([]Option{WithClock(fixedClock())}, opts...)...)
	if err := m.Register(rec.state("A"), rec.state("B"), rec.state("C")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.AddTransition("A", "B"); err != nil {
		t.Fatalf("AddTransition: %v", err)
	}
	if err := m.AddTransition("B", "C"); err != nil {
		t.Fatalf("AddTransition: %v", err)
	}
	return m
}

func historyStates(m *Machine) []StateID {
	var out []StateID
	for _, h := range m.History() {
		out = append(out, h.State)
	}
	return out
}

func TestEndToEnd_StrictPolicy(t *testing.T) {
	rec := &recorder{}
	m := newABC(t, rec)

	if _, ok := m.Current(); ok {
		t.Fatal("new machine should be unstarted")
	}

	if err := m.ChangeState("A"); err != nil {
		t.Fatalf("ChangeState(A): %v", err)
	}
	if got := historyStates(m); !reflect.DeepEqual(got, []StateID{"A"}) {
		t.Errorf("history = %v, want [A]", got)
	}

	rec.calls = nil
	if err := m.ChangeState("B"); err != nil {
		t.Fatalf("ChangeState(B): %v", err)
	}
	if want := []string{"exit:A", "enter:B"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("hook calls = %v, want %v", rec.calls, want)
	}
	if got := historyStates(m); !reflect.DeepEqual(got, []StateID{"A", "B"}) {
		t.Errorf("history = %v, want [A B]", got)
	}

	if err := m.ChangeState("C"); err != nil {
		t.Fatalf("ChangeState(C): %v", err)
	}

	rec.calls = nil
	err := m.ChangeState("A")
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("ChangeState(A) from C: err = %v, want ErrIllegalTransition", err)
	}
	var ite *IllegalTransitionError
	if !errors.As(err, &ite) || ite.From != "C" || ite.To != "A" {
		t.Errorf("error detail = %+v", ite)
	}
	if len(rec.calls) != 0 {
		t.Errorf("rejected transition ran hooks: %v", rec.calls)
	}
	if cur, _ := m.Current(); cur != "C" {
		t.Errorf("current = %q after rejected transition, want C", cur)
	}
	if got := historyStates(m); !reflect.DeepEqual(got, []StateID{"A", "B", "C"}) {
		t.Errorf("history = %v, want [A B C]", got)
	}
	if prev, _ := m.Previous(); prev != "B" {
		t.Errorf("previous = %q, want B", prev)
	}
}

func TestChangeState_UnknownState(t *testing.T) {
	m := newABC(t, &recorder{})
	err := m.ChangeState("Z")
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("err = %v, want ErrUnknownState", err)
	}
	if _, ok := m.Current(); ok {
		t.Error("unknown target must not start the machine")
	}
}

func TestChangeState_FirstTransitionMayTargetAnyState(t *testing.T) {
	m := newABC(t, &recorder{})
	if err := m.ChangeState("C"); err != nil {
		t.Fatalf("ChangeState(C) from unstarted: %v", err)
	}
	h := m.History()
	if len(h) != 1 || h[0].From != "" || h[0].State != "C" {
		t.Errorf("history = %+v", h)
	}
}

func TestChangeState_SelfTransitionNeedsEdge(t *testing.T) {
	rec := &recorder{}
	m := newABC(t, rec)
	_ = m.ChangeState("A")

	if err := m.ChangeState("A"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("self transition without edge: err = %v", err)
	}

	if err := m.AddTransition("A", "A"); err != nil {
		t.Fatal(err)
	}
	rec.calls = nil
	if err := m.ChangeState("A"); err != nil {
		t.Fatalf("self transition with edge: %v", err)
	}
	if want := []string{"exit:A", "enter:A"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("hook calls = %v, want %v", rec.calls, want)
	}
}

func TestChangeState_HookAndEventOrder(t *testing.T) {
	rec := &recorder{}
	m := newABC(t, rec)
	for _, name := range []EventName{EventStateChange, EventStateEnter, EventStateExit} {
		name := name
		m.On(name, func(ev Event) {
			rec.add(string(name) + ":" + string(ev.From) + "->" + string(ev.To))
		})
	}

	_ = m.ChangeState("A")
	want := []string{"enter:A", "stateEnter:->A", "stateChange:->A"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("first transition calls = %v, want %v", rec.calls, want)
	}

	rec.calls = nil
	_ = m.ChangeState("B")
	want = []string{"exit:A", "enter:B", "stateExit:A->B", "stateEnter:A->B", "stateChange:A->B"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestChangeState_ListenerPanicIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := &recorder{}
	m := newABC(t, rec, WithLogger(logger))

	m.On(EventStateEnter, func(Event) { panic("broken observer") })
	var delivered int
	m.On(EventStateEnter, func(Event) { delivered++ })
	m.On(EventStateChange, func(Event) { delivered++ })

	if err := m.ChangeState("A"); err != nil {
		t.Fatalf("ChangeState must succeed despite a panicking listener: %v", err)
	}
	if delivered != 2 {
		t.Errorf("delivered = %d, want 2", delivered)
	}
	if cur, _ := m.Current(); cur != "A" {
		t.Errorf("current = %q, want A", cur)
	}
	if !strings.Contains(buf.String(), "fsm listener panicked") || !strings.Contains(buf.String(), "broken observer") {
		t.Errorf("panic not logged: %q", buf.String())
	}
}

func TestChangeState_ReentrantCallFails(t *testing.T) {
	var reentrantErr error
	m := New()
	err := m.Register(
		State{ID: "A", OnEnter: nil},
		State{ID: "B"},
		State{ID: "C"},
	)
	if err != nil {
		t.Fatal(err)
	}
	_ = m.AddTransition("A", "B", "C")
	_ = m.AddTransition("B", "C")

	_ = m.ChangeState("A")
	m.On(EventStateEnter, func(ev Event) {
		if ev.To == "B" {
			reentrantErr = m.ChangeState("C")
		}
	})

	if err := m.ChangeState("B"); err != nil {
		t.Fatalf("outer ChangeState: %v", err)
	}
	if !errors.Is(reentrantErr, ErrReentrantTransition) {
		t.Errorf("inner ChangeState err = %v, want ErrReentrantTransition", reentrantErr)
	}
	if cur, _ := m.Current(); cur != "B" {
		t.Errorf("current = %q, want B", cur)
	}

	// The guard is released once the outer call returns.
	if err := m.ChangeState("C"); err != nil {
		t.Errorf("ChangeState(C) after re-entrancy: %v", err)
	}
}

func TestChangeState_ReentrantFromHookFails(t *testing.T) {
	var m *Machine
	var inner error
	m = New()
	_ = m.Register(
		State{ID: "A"},
		State{ID: "B", OnEnter: func() { inner = m.ChangeState("A") }},
	)
	_ = m.AddTransition("A", "B")
	_ = m.AddTransition("B", "A")
	_ = m.ChangeState("A")

	if err := m.ChangeState("B"); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrReentrantTransition) {
		t.Errorf("err = %v, want ErrReentrantTransition", inner)
	}
}

func TestRegister(t *testing.T) {
	m := New()
	if err := m.Register(State{ID: "A"}); err != nil {
		t.Fatal(err)
	}

	err := m.Register(State{ID: "A"})
	if !errors.Is(err, ErrDuplicateState) {
		t.Errorf("re-register: err = %v, want ErrDuplicateState", err)
	}

	err = m.Register(State{ID: "B"}, State{ID: "B"})
	if !errors.Is(err, ErrDuplicateState) {
		t.Errorf("duplicate in one call: err = %v, want ErrDuplicateState", err)
	}
	if got := m.States(); !reflect.DeepEqual(got, []StateID{"A"}) {
		t.Errorf("failed Register leaked states: %v", got)
	}

	if err := m.Register(State{}); !errors.Is(err, gameerr.ErrInvalidArgument) {
		t.Errorf("empty id: err = %v, want invalid argument", err)
	}
}

func TestRegister_KeepsOriginalOnDuplicate(t *testing.T) {
	var entered string
	m := New()
	_ = m.Register(State{ID: "A", OnEnter: func() { entered = "original" }})
	_ = m.Register(State{ID: "A", OnEnter: func() { entered = "replacement" }})

	_ = m.ChangeState("A")
	if entered != "original" {
		t.Errorf("entered = %q, want original", entered)
	}
}

func TestAddTransition_UnknownEnds(t *testing.T) {
	m := newABC(t, &recorder{})
	if err := m.AddTransition("X", "A"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("unknown source: err = %v", err)
	}
	if err := m.AddTransition("A", "B", "Y"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("unknown destination: err = %v", err)
	}
	if m.HasTransition("B", "A") {
		t.Error("edges must not be bidirectional")
	}
	if got := m.Transitions("A"); !reflect.DeepEqual(got, []StateID{"B"}) {
		t.Errorf("Transitions(A) = %v, want [B]", got)
	}
}

func TestCanChangeTo(t *testing.T) {
	m := newABC(t, &recorder{})
	if !m.CanChangeTo("C") {
		t.Error("unstarted machine should accept any registered state")
	}
	if m.CanChangeTo("Z") {
		t.Error("unknown state accepted")
	}
	_ = m.ChangeState("A")
	if !m.CanChangeTo("B") || m.CanChangeTo("C") {
		t.Error("CanChangeTo does not follow edges from A")
	}
}

func TestHistory_BoundedRing(t *testing.T) {
	m := New(WithHistoryCap(3), WithClock(fixedClock()))
	_ = m.Register(State{ID: "A"}, State{ID: "B"})
	_ = m.AddTransition("A", "B")
	_ = m.AddTransition("B", "A")

	_ = m.ChangeState("A")
	for i := 0; i < 10; i++ {
		next := StateID("B")
		if i%2 == 1 {
			next = "A"
		}
		if err := m.ChangeState(next); err != nil {
			t.Fatal(err)
		}
		if n := len(m.History()); n > m.HistoryCap() {
			t.Fatalf("history length %d exceeds cap %d", n, m.HistoryCap())
		}
	}

	h := m.History()
	if len(h) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(h))
	}
	// 11 transitions: A,B,A,B,A,B,A,B,A,B,A; last three are A,B,A.
	if got := historyStates(m); !reflect.DeepEqual(got, []StateID{"A", "B", "A"}) {
		t.Errorf("history = %v", got)
	}
	for i := 1; i < len(h); i++ {
		if !h[i].At.After(h[i-1].At) {
			t.Errorf("history not oldest-first at %d", i)
		}
		if h[i].From != h[i-1].State {
			t.Errorf("entry %d From = %q, want %q", i, h[i].From, h[i-1].State)
		}
	}
}

func TestHistory_DefaultCap(t *testing.T) {
	m := New(WithHistoryCap(0))
	if m.HistoryCap() != DefaultHistoryCap {
		t.Errorf("HistoryCap = %d, want %d", m.HistoryCap(), DefaultHistoryCap)
	}
}

func TestUpdate(t *testing.T) {
	rec := &recorder{}
	m := newABC(t, rec)

	m.Update(time.Second)
	if len(rec.calls) != 0 {
		t.Errorf("Update on unstarted machine ran hooks: %v", rec.calls)
	}

	_ = m.ChangeState("A")
	rec.calls = nil
	m.Update(16 * time.Millisecond)
	if want := []string{"update:A:16ms"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestOnOffEmit(t *testing.T) {
	m := New(WithClock(fixedClock()))
	var got []Event
	id := m.On("levelComplete", func(ev Event) { got = append(got, ev) })

	m.Emit(Event{Name: "levelComplete", To: "kitchen"})
	if len(got) != 1 || got[0].To != "kitchen" || got[0].At.IsZero() {
		t.Fatalf("got = %+v", got)
	}

	if !m.Off("levelComplete", id) {
		t.Error("Off returned false for a live subscription")
	}
	if m.Off("levelComplete", id) {
		t.Error("Off returned true twice")
	}
	m.Emit(Event{Name: "levelComplete"})
	if len(got) != 1 {
		t.Errorf("listener ran after Off")
	}
}

func TestOff_DuringDispatch(t *testing.T) {
	m := New()
	var calls int
	var second ListenerID
	m.On("tick", func(Event) {
		calls++
		m.Off("tick", second)
	})
	second = m.On("tick", func(Event) { calls++ })

	m.Emit(Event{Name: "tick"})
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (dispatch uses a snapshot)", calls)
	}
	m.Emit(Event{Name: "tick"})
	if calls != 3 {
		t.Errorf("calls = %d, want 3 after Off", calls)
	}
}
