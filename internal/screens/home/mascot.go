package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordquiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // Default
	MascotCheered                      // Accuracy at or above 80%
	MascotWorried                      // Accuracy below 50%
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A-Z │
└─────┘`

const mascotCheered = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A-Z │
└─╥═╥─┘
  ╚═╝`

const mascotWorried = `┌─────┐
│ ◉ ◉ │ ?
│  ◠  │
│ A-Z │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCheered:
		art = mascotCheered
		fg = theme.Success
	case MascotWorried:
		art = mascotWorried
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks the mascot variant for the journal stats.
func mascotFor(st Stats) MascotVariant {
	if !st.Loaded || st.Attempts < 10 {
		return MascotIdle
	}
	switch acc := st.Accuracy(); {
	case acc >= 80:
		return MascotCheered
	case acc < 50:
		return MascotWorried
	}
	return MascotIdle
}
