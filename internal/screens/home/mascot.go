package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/voltquest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // steady glow
	MascotCharged                      // quiz passed
	MascotFlicker                      // quiz tried but not passed yet
)

const mascotIdle = ` .---.
( o o )
 \ - /
  |=|
  '-'`

const mascotCharged = `\ .---. /
 ( * * )
  \ v /
   |=|
   '-'`

const mascotFlicker = ` .---.  ?
( o o )
 \ ~ /
  |=|
  '-'`

// RenderMascot returns the bulb mascot for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCharged:
		art = mascotCharged
		fg = theme.ArcadeYellow
	case MascotFlicker:
		art = mascotFlicker
		fg = theme.Accent
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
