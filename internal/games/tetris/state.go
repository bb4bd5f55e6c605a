package tetris

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const emptyCell Type = '.'

type Snapshot struct {
	Board      []string          `json:"board"`
	Piece      Piece             `json:"piece"`
	Next       string            `json:"next"`
	Score      int               `json:"score"`
	Level      int               `json:"level"`
	Lines      int               `json:"lines"`
	Status     arcade.Status     `json:"status"`
	Difficulty arcade.Difficulty `json:"difficulty"`
}

type state struct {
	Snapshot
	Combo      int  `json:"combo"`
	BackToBack bool `json:"backToBack"`
}

func (that *Game) rows() []string {
	rows := make([]string, Rows)
	for y := range that.board {
		var row strings.Builder
		for _, cell := range that.board[y] {
			if cell == 0 {
				cell = emptyCell
			}
			row.WriteByte(byte(cell))
		}
		rows[y] = row.String()
	}
	return rows
}

func (that *Game) Snapshot() any {
	piece := that.piece
	piece.Shape = copyShape(piece.Shape)

	return Snapshot{
		Board:      that.rows(),
		Piece:      piece,
		Next:       string([]byte{byte(that.next)}),
		Score:      that.score,
		Level:      that.level,
		Lines:      that.lines,
		Status:     that.status,
		Difficulty: that.difficulty,
	}
}

func (that *Game) MarshalJSON() ([]byte, error) {
	snapshot, _ := that.Snapshot().(Snapshot)
	return json.Marshal(state{Snapshot: snapshot, Combo: that.combo, BackToBack: that.b2b})
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var saved state
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal tetris: %w", err)
	}

	if len(saved.Board) != Rows {
		return fmt.Errorf("failed to unmarshal tetris: board has %d rows", len(saved.Board))
	}
	if !saved.Piece.rotationOf(saved.Piece.Type) {
		return fmt.Errorf("failed to unmarshal tetris: unknown piece shape")
	}
	if len(saved.Next) != 1 {
		return fmt.Errorf("failed to unmarshal tetris: unknown next piece %q", saved.Next)
	}
	if _, ok := shapes[Type(saved.Next[0])]; !ok {
		return fmt.Errorf("failed to unmarshal tetris: unknown next piece %q", saved.Next)
	}

	var board [Rows][Cols]Type
	for y, row := range saved.Board {
		if len(row) != Cols {
			return fmt.Errorf("failed to unmarshal tetris: row %d has %d cells", y, len(row))
		}
		for x := range Cols {
			if cell := Type(row[x]); cell != emptyCell {
				board[y][x] = cell
			}
		}
	}

	if settings, ok := difficulties[saved.Difficulty]; ok {
		that.difficulty, that.settings = saved.Difficulty, settings
	}
	that.board = board
	that.piece = saved.Piece
	that.next = Type(saved.Next[0])
	that.score = saved.Score
	that.level = max(saved.Level, 1)
	that.lines = saved.Lines
	that.status = saved.Status
	that.combo = saved.Combo
	that.b2b = saved.BackToBack

	return nil
}

var tones = map[Type]arcade.Tone{
	'I': arcade.ToneSecondary,
	'O': arcade.ToneHighlight,
	'T': arcade.TonePrimary,
	'S': arcade.ToneAccent,
	'Z': arcade.ToneDanger,
	'J': arcade.ToneSecondary,
	'L': arcade.ToneHighlight,
}

func (that *Game) View() arcade.Frame {
	frame := arcade.NewFrame("Tetris", Rows, Cols)

	for y := range that.board {
		for x, cell := range that.board[y] {
			if cell != 0 {
				frame.Set(y, x, '■', tones[cell])
			}
		}
	}

	if that.status != arcade.StatusFinished {
		that.piece.cells(func(x, y int) {
			frame.Set(y, x, '■', tones[that.piece.Type])
		})
	}

	frame.Status = []string{
		fmt.Sprintf("Score: %d", that.score),
		fmt.Sprintf("Level: %d  Lines: %d", that.level, that.lines),
		fmt.Sprintf("Next: %c", that.next),
	}

	switch that.status {
	case arcade.StatusPaused:
		frame.Status = append(frame.Status, "Paused")
	case arcade.StatusFinished:
		frame.Status = append(frame.Status, "Game Over!")
	}

	return frame
}
