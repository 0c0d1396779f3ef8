package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderShowsStatus(t *testing.T) {
	h := RenderHeader("Kitchen", Status{RoomsDone: 2, RoomsTotal: 4, BestQuiz: 87.5}, 100)
	for _, want := range []string{"VoltQuest", "Kitchen", "2/4", "88%"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	header := RenderHeader("T", Status{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if !strings.Contains(frame, "body") || !strings.Contains(frame, "Quit") {
		t.Errorf("frame missing content or footer:\n%s", frame)
	}
	if lipgloss.Height(frame) < lipgloss.Height(header)+lipgloss.Height(footer) {
		t.Error("frame shorter than header plus footer")
	}
}
