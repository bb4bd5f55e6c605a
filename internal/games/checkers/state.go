package checkers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

// Snapshot rows use r/b for men, R/B for kings and . for empty squares.
type Snapshot struct {
	Board      []string          `json:"board"`
	Turn       Side              `json:"turn"`
	Player     Side              `json:"player"`
	Forced     *arcade.Position  `json:"forced,omitempty"`
	Moves      []Move            `json:"moves"`
	Winner     Side              `json:"winner,omitempty"`
	Status     arcade.Status     `json:"status"`
	Mode       arcade.Mode       `json:"mode"`
	Difficulty arcade.Difficulty `json:"difficulty"`
}

func (that *Board) rows() []string {
	rows := make([]string, Size)
	for row := range Size {
		var line strings.Builder
		for col := range Size {
			line.WriteByte(byte(that[row][col]))
		}
		rows[row] = line.String()
	}
	return rows
}

func parseBoard(rows []string) (Board, error) {
	var board Board
	if len(rows) != Size {
		return board, fmt.Errorf("board has %d rows", len(rows))
	}

	for row, line := range rows {
		if len(line) != Size {
			return board, fmt.Errorf("row %d has %d squares", row, len(line))
		}
		for col := range Size {
			piece := Piece(line[col])
			if piece != Empty && piece.Side() == "" {
				return board, fmt.Errorf("unknown piece %q at %d,%d", line[col], row, col)
			}
			board[row][col] = piece
		}
	}

	return board, nil
}

func (that *Game) Snapshot() any {
	var forced *arcade.Position
	if that.forced != nil {
		pos := *that.forced
		forced = &pos
	}

	var moves []Move
	if that.status != arcade.StatusFinished {
		moves = that.board.LegalMoves(that.turn, that.forced)
	}

	return Snapshot{
		Board:      that.board.rows(),
		Turn:       that.turn,
		Player:     that.player,
		Forced:     forced,
		Moves:      moves,
		Winner:     that.winner,
		Status:     that.status,
		Mode:       that.mode,
		Difficulty: that.difficulty,
	}
}

func (that *Game) MarshalJSON() ([]byte, error) {
	snapshot, _ := that.Snapshot().(Snapshot)
	snapshot.Moves = nil
	return json.Marshal(snapshot)
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var saved Snapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal checkers: %w", err)
	}

	board, err := parseBoard(saved.Board)
	if err != nil {
		return fmt.Errorf("failed to unmarshal checkers: %w", err)
	}

	that.board = board
	that.turn = saved.Turn
	that.player = saved.Player
	that.forced = saved.Forced
	that.winner = saved.Winner
	that.status = saved.Status
	that.mode = saved.Mode
	that.difficulty = saved.Difficulty

	return nil
}

func (that *Game) View() arcade.Frame {
	frame := arcade.NewFrame("Checkers", Size, Size)

	for row := range Size {
		for col := range Size {
			if (row+col)%2 == 0 {
				frame.Set(row, col, ' ', arcade.ToneBlank)
			}

			piece := that.board[row][col]
			if piece == Empty {
				continue
			}

			r := '●'
			if piece.King() {
				r = '♛'
			}
			tone := arcade.ToneDanger
			if piece.Side() == Black {
				tone = arcade.ToneText
			}
			if that.forced != nil && *that.forced == (arcade.Position{Row: row, Col: col}) {
				tone = arcade.ToneHighlight
			}
			frame.Set(row, col, r, tone)
		}
	}

	if that.status == arcade.StatusFinished {
		frame.Status = []string{fmt.Sprintf("Game Over! %s Wins!", title(that.winner))}
	} else {
		frame.Status = []string{fmt.Sprintf("Current Player: %s", that.turn)}
	}

	return frame
}

func title(side Side) string {
	if side == "" {
		return ""
	}
	return strings.ToUpper(string(side[:1])) + string(side[1:])
}
