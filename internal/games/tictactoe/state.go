package tictactoe

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

type Snapshot struct {
	Board        Board             `json:"board"`
	Turn         string            `json:"turn"`
	Winner       string            `json:"winner,omitempty"`
	WinningCells []int             `json:"winningCells,omitempty"`
	Status       arcade.Status     `json:"status"`
	Mode         arcade.Mode       `json:"mode"`
	Difficulty   arcade.Difficulty `json:"difficulty"`
}

func (that *Game) Snapshot() any {
	return Snapshot{
		Board:        that.board,
		Turn:         that.turn,
		Winner:       that.winner,
		WinningCells: append([]int(nil), that.winningCells...),
		Status:       that.status,
		Mode:         that.mode,
		Difficulty:   that.difficulty,
	}
}

func (that *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Snapshot())
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var saved Snapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal tictactoe: %w", err)
	}

	that.board = saved.Board
	that.turn = saved.Turn
	that.winner = saved.Winner
	that.winningCells = saved.WinningCells
	that.status = saved.Status
	that.mode = saved.Mode
	that.difficulty = saved.Difficulty

	return nil
}

func (that *Game) View() arcade.Frame {
	frame := arcade.NewFrame("Tic Tac Toe", boardSize, boardSize)

	for i, mark := range that.board {
		tone := arcade.TonePrimary
		if mark == PlayerO {
			tone = arcade.ToneSecondary
		}
		for _, cell := range that.winningCells {
			if cell == i {
				tone = arcade.ToneHighlight
			}
		}

		if mark != EmptyCell {
			frame.Set(i/boardSize, i%boardSize, rune(mark[0]), tone)
		}
	}

	switch that.winner {
	case PlayerTie:
		frame.Status = []string{"It's a Draw!"}
	case PlayerX, PlayerO:
		frame.Status = []string{"Winner: " + that.winner}
	default:
		frame.Status = []string{"Next player: " + that.turn}
	}

	return frame
}
