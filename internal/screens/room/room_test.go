package room

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/game/gametest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func inLivingRoom(t *testing.T) (*game.Game, *RoomScreen) {
	t.Helper()
	g := gametest.Started(t, game.Options{})
	if err := g.Play(); err != nil {
		t.Fatal(err)
	}
	s := New(g)
	s.Init()
	return g, s
}

func applianceOn(t *testing.T, g *game.Game, name string) bool {
	t.Helper()
	lvl, err := g.CurrentLevel()
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range lvl.Appliances {
		if a.Name == name {
			return a.IsOn
		}
	}
	t.Fatalf("no appliance %q", name)
	return false
}

func TestShowsLevel(t *testing.T) {
	_, s := inLivingRoom(t)
	if s.Title() != "Living Room" {
		t.Errorf("title = %q", s.Title())
	}
	view := s.View(100, 40)
	for _, want := range []string{"Air Conditioner", "Wi-Fi Router", "over target", "Rp 150.000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestToggleSelected(t *testing.T) {
	g, s := inLivingRoom(t)
	s.Update(down) // TV
	s.Update(space)
	if applianceOn(t, g, "TV") {
		t.Error("TV should be off after toggling")
	}
	s.Update(space)
	if !applianceOn(t, g, "TV") {
		t.Error("TV should be back on")
	}
}

func TestEssentialCannotBeSwitchedOff(t *testing.T) {
	g, s := inLivingRoom(t)
	for range 4 {
		s.Update(down)
	}
	s.Update(space)
	if !applianceOn(t, g, "Wi-Fi Router") {
		t.Error("essential appliance was switched off")
	}
	if !s.isError || s.notice == "" {
		t.Error("expected an error notice")
	}
}

func TestEditHours(t *testing.T) {
	g, s := inLivingRoom(t)
	s.Update(keyPress('h'))
	if !s.editing {
		t.Fatal("h should open the hours editor")
	}
	for _, r := range "2" {
		s.Update(keyPress(r))
	}
	s.Update(enter)
	if s.editing {
		t.Error("enter should close the editor")
	}
	lvl, _ := g.CurrentLevel()
	if got := lvl.Appliances[0].HoursPerDay; got != 2 {
		t.Errorf("AC hours = %v, want 2", got)
	}
	if !s.report.WithinTarget {
		t.Errorf("living room should be within target with AC at 2h, bill %s", s.report.TotalMonthlyBill)
	}
}

func TestEditHoursRejectsOutOfRange(t *testing.T) {
	g, s := inLivingRoom(t)
	s.Update(keyPress('h'))
	for _, r := range "30" {
		s.Update(keyPress(r))
	}
	s.Update(enter)
	if !s.isError {
		t.Error("30 hours should be rejected")
	}
	lvl, _ := g.CurrentLevel()
	if got := lvl.Appliances[0].HoursPerDay; got != 8 {
		t.Errorf("AC hours = %v, want unchanged 8", got)
	}
}

func TestEditCancel(t *testing.T) {
	g, s := inLivingRoom(t)
	s.Update(keyPress('h'))
	s.Update(keyPress('1'))
	s.Update(esc)
	if s.editing {
		t.Error("esc should cancel editing")
	}
	lvl, _ := g.CurrentLevel()
	if lvl.Appliances[0].HoursPerDay != 8 {
		t.Error("cancel should not change hours")
	}
	if g.Current() != game.StateLiving {
		t.Error("esc while editing should not leave the room")
	}
}

func TestCheckOverTargetStays(t *testing.T) {
	g, s := inLivingRoom(t)
	s.Update(enter)
	if g.Current() != game.StateLiving {
		t.Errorf("current = %q, want living room", g.Current())
	}
	if !strings.Contains(s.notice, "over the target") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestCheckWithinTargetAdvances(t *testing.T) {
	g, s := inLivingRoom(t)
	gametest.SolveRoom(t, g)
	s.Update(enter)
	if g.Current() != game.StateKitchen {
		t.Errorf("current = %q, want kitchen", g.Current())
	}
	if !g.Completed(game.StateLiving) {
		t.Error("living room should be completed")
	}
}

func TestTips(t *testing.T) {
	_, s := inLivingRoom(t)
	s.Update(keyPress('s'))
	if !s.showTips || len(s.suggestions) == 0 {
		t.Fatal("expected suggestions for the living room")
	}
	if !strings.Contains(s.View(100, 40), "Tips") {
		t.Error("tips panel not rendered")
	}
}

func TestEscReturnsToMenu(t *testing.T) {
	g, s := inLivingRoom(t)
	s.Update(esc)
	if g.Current() != game.StateMenu {
		t.Errorf("current = %q, want menu", g.Current())
	}
}

func TestKeyHints(t *testing.T) {
	_, s := inLivingRoom(t)
	hints := s.KeyHints()
	if len(hints) != 6 {
		t.Errorf("hints = %v", hints)
	}
	s.Update(keyPress('h'))
	if hints := s.KeyHints(); hints[len(hints)-1].Description != "Cancel" {
		t.Errorf("editing hints = %v", hints)
	}
}
