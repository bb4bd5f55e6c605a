package minesweeper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

// Snapshot rows use # for hidden cells, F for flags, * for mines and the
// neighbour count for revealed cells.
type Snapshot struct {
	Rows   int              `json:"rows"`
	Cols   int              `json:"cols"`
	Mines  int              `json:"mines"`
	Flags  int              `json:"flags"`
	Board  []string         `json:"board"`
	Status arcade.Status    `json:"status"`
	Won    bool             `json:"won,omitempty"`
	Lost   *arcade.Position `json:"lost,omitempty"`
}

type state struct {
	Seed  int64  `json:"seed"`
	Mines int    `json:"mines"`
	Board string `json:"board"`
}

func (that *cell) visible() byte {
	switch {
	case that.revealed && that.mine:
		return '*'
	case that.revealed:
		return strconv.Itoa(that.neighbors)[0]
	case that.flagged:
		return 'F'
	default:
		return '#'
	}
}

func (that *Game) Snapshot() any {
	board := make([]string, that.rows)
	for row := range that.cells {
		line := make([]byte, that.cols)
		for col := range that.cells[row] {
			line[col] = that.cells[row][col].visible()
		}
		board[row] = string(line)
	}

	return Snapshot{
		Rows:   that.rows,
		Cols:   that.cols,
		Mines:  that.mines,
		Flags:  that.flags,
		Board:  board,
		Status: that.status,
		Won:    that.won,
		Lost:   that.lost,
	}
}

func (that *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(state{Seed: that.seed, Mines: that.mines, Board: that.serializeBoard()})
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var saved state
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal minesweeper: %w", err)
	}

	game, err := parseBoard(saved.Board, saved.Seed)
	if err != nil {
		return fmt.Errorf("failed to unmarshal minesweeper: %w", err)
	}

	if !game.placed {
		game.mines = saved.Mines
	}
	game.recount()

	*that = *game

	return nil
}

func (that *Game) View() arcade.Frame {
	frame := arcade.NewFrame("Minesweeper", that.rows, that.cols)

	for row := range that.cells {
		for col := range that.cells[row] {
			current := that.cells[row][col]
			switch {
			case that.isLost(row, col):
				frame.Set(row, col, '✹', arcade.ToneDanger)
			case current.revealed && current.mine:
				frame.Set(row, col, '✹', arcade.ToneAccent)
			case current.revealed && current.neighbors == 0:
				frame.Set(row, col, ' ', arcade.ToneBlank)
			case current.revealed:
				frame.Set(row, col, rune('0'+current.neighbors), arcade.ToneText)
			case current.flagged:
				frame.Set(row, col, '⚑', arcade.ToneDanger)
			default:
				frame.Set(row, col, '■', arcade.TonePrimary)
			}
		}
	}

	frame.Status = []string{fmt.Sprintf("Mines: %d  Flags: %d", that.mines, that.flags)}
	switch {
	case that.won:
		frame.Status = append(frame.Status, "You Win!")
	case that.lost != nil:
		frame.Status = append(frame.Status, "Game Over!")
	}

	return frame
}
