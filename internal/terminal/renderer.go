package terminal

import (
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const (
	boardTop  = 2
	boardLeft = 2
)

// View is everything drawn in one pass.
type View struct {
	Frame    arcade.Frame
	Cursor   *arcade.Position
	Selected *arcade.Position
	Message  string
	Help     string
}

// Render - draws the view, each board cell takes two columns.
func Render(screen *Screen, view View) {
	screen.Clear()

	screen.Text(boardLeft, 0, view.Frame.Title, styleTitle)

	for row, cells := range view.Frame.Cells {
		for col, glyph := range cells {
			style := toneStyle(glyph.Tone)

			at := arcade.Position{Row: row, Col: col}
			if view.Selected != nil && *view.Selected == at {
				style = style.Underline(true).Bold(true)
			}
			if view.Cursor != nil && *view.Cursor == at {
				style = style.Reverse(true)
			}

			screen.SetContent(boardLeft+col*2, boardTop+row, glyph.Rune, style)
		}
	}

	y := boardTop + len(view.Frame.Cells) + 1
	for _, line := range view.Frame.Status {
		screen.Text(boardLeft, y, line, styleStatus)
		y++
	}

	if view.Message != "" {
		screen.Text(boardLeft, y, view.Message, styleError)
		y++
	}

	if view.Help != "" {
		screen.Text(boardLeft, y+1, view.Help, styleHelp)
	}

	screen.Show()
}
