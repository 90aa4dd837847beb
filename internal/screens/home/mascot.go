package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default heart
	MascotCelebrating                      // Certified
	MascotWaiting                          // Nothing learned yet
)

const mascotIdle = ` ▄▀▀▄▄▀▀▄
█  ◉  ◉  █
 ▀▄  ◡  ▄▀
   ▀▄▄▀`

const mascotCelebrating = `★ ▄▀▀▄▄▀▀▄ ★
 █  ^  ^  █
  ▀▄  ◡  ▄▀
    ▀▄▄▀`

const mascotWaiting = ` ▄▀▀▄▄▀▀▄
█  ◉  ◉  █ ?
 ▀▄  ─  ▄▀
   ▀▄▄▀`

// VariantFor picks the mascot for the learner's progress.
func VariantFor(p progress.Progress) MascotVariant {
	switch {
	case len(p.CertificationsEarned) > 0:
		return MascotCelebrating
	case len(p.CompletedLessons) == 0 && p.PracticeTime == 0:
		return MascotWaiting
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	var art string
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Warning
	case MascotWaiting:
		art = mascotWaiting
		fg = theme.Secondary
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
