package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

var (
	colorPink   = tcell.NewRGBColor(0xFF, 0x78, 0xB9)
	colorBlue   = tcell.NewRGBColor(0x9E, 0xEA, 0xF9)
	colorAccent = tcell.NewRGBColor(0xFF, 0xC2, 0xE2)
)

var (
	styleTitle  = tcell.StyleDefault.Foreground(colorPink).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// toneStyle - the color of a palette slot.
func toneStyle(tone arcade.Tone) tcell.Style {
	switch tone {
	case arcade.ToneMuted:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case arcade.TonePrimary:
		return tcell.StyleDefault.Foreground(colorPink)
	case arcade.ToneSecondary:
		return tcell.StyleDefault.Foreground(colorBlue)
	case arcade.ToneAccent:
		return tcell.StyleDefault.Foreground(colorAccent)
	case arcade.ToneDanger:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case arcade.ToneHighlight:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case arcade.ToneText:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	default:
		return tcell.StyleDefault
	}
}
