package fsm

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidate_ReportsOrphan(t *testing.T) {
	m := New()
	_ = m.Register(State{ID: "menu"}, State{ID: "room"}, State{ID: "quiz"}, State{ID: "orphan"})
	_ = m.AddTransition("menu", "room")
	_ = m.AddTransition("room", "quiz", "menu")
	// orphan can leave, but nothing leads to it.
	_ = m.AddTransition("orphan", "menu")

	report, err := m.Validate("menu")
	if err != nil {
		t.Fatal(err)
	}
	if report.OK() {
		t.Fatal("expected unreachable states")
	}
	if !reflect.DeepEqual(report.Unreachable, []StateID{"orphan"}) {
		t.Errorf("Unreachable = %v, want [orphan]", report.Unreachable)
	}
	if !reflect.DeepEqual(report.Reachable, []StateID{"menu", "room", "quiz"}) {
		t.Errorf("Reachable = %v", report.Reachable)
	}
	if err := report.Err(); err == nil || !strings.Contains(err.Error(), `"orphan"`) {
		t.Errorf("Err() = %v", err)
	}
}

func TestValidate_AllReachable(t *testing.T) {
	m := New()
	_ = m.Register(State{ID: "A"}, State{ID: "B"}, State{ID: "C"})
	_ = m.AddTransition("A", "B")
	_ = m.AddTransition("B", "C")
	_ = m.AddTransition("C", "A")

	report, err := m.Validate("B")
	if err != nil {
		t.Fatal(err)
	}
	if !report.OK() || report.Err() != nil {
		t.Errorf("expected OK report, got %+v", report)
	}
}

func TestValidate_DoesNotChangeState(t *testing.T) {
	m := New()
	_ = m.Register(State{ID: "A"}, State{ID: "B"})
	_ = m.AddTransition("A", "B")
	if _, err := m.Validate("A"); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Current(); ok {
		t.Error("Validate started the machine")
	}
}

func TestValidate_UnknownInitial(t *testing.T) {
	m := New()
	_, err := m.Validate("nowhere")
	if !errors.Is(err, ErrUnknownState) {
		t.Errorf("err = %v, want ErrUnknownState", err)
	}
}
