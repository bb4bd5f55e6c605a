package arcade

// Tone is a palette slot, front-ends map it onto real colors.
type Tone uint8

const (
	ToneBlank Tone = iota
	ToneMuted
	TonePrimary
	ToneSecondary
	ToneAccent
	ToneDanger
	ToneHighlight
	ToneText
)

type Glyph struct {
	Rune rune
	Tone Tone
}

// Frame is a text render of a game board plus a few status lines.
type Frame struct {
	Title  string
	Cells  [][]Glyph
	Status []string
}

// NewFrame - returns a frame filled with blank glyphs.
func NewFrame(title string, rows, cols int) Frame {
	cells := make([][]Glyph, rows)
	for row := range cells {
		cells[row] = make([]Glyph, cols)
		for col := range cells[row] {
			cells[row][col] = Glyph{Rune: '·', Tone: ToneMuted}
		}
	}

	return Frame{Title: title, Cells: cells}
}

// Set - ignores coordinates outside the frame.
func (that *Frame) Set(row, col int, r rune, tone Tone) {
	if row < 0 || row >= len(that.Cells) || col < 0 || col >= len(that.Cells[row]) {
		return
	}
	that.Cells[row][col] = Glyph{Rune: r, Tone: tone}
}
