package tictactoe

import (
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/games/minimax"
)

const (
	winScore = 10
	// share of medium moves that are picked at random
	mediumBlunder = 0.3
)

// rules scores boards for O, the computer.
type rules struct{}

func (rules) Moves(board Board, _ bool) []int {
	return board.emptyCells()
}

func (rules) Play(board Board, cell int, maximizing bool) Board {
	if maximizing {
		board[cell] = PlayerO
	} else {
		board[cell] = PlayerX
	}
	return board
}

func (rules) Evaluate(board Board, depth int) (int, bool) {
	switch winner, _ := checkGameStatus(board); winner {
	case PlayerO:
		return winScore - depth, true
	case PlayerX:
		return depth - winScore, true
	case PlayerTie:
		return 0, true
	default:
		return 0, false
	}
}

// BestMove - the optimal cell for O.
func BestMove(board Board) int {
	result := minimax.Search[Board, int](rules{}, board, len(board), true)
	if !result.Found {
		return -1
	}
	return result.Move
}

func (that *Game) aiMove() int {
	empty := that.board.emptyCells()
	random := empty[that.rng.Intn(len(empty))]

	switch that.difficulty {
	case arcade.Easy:
		return random
	case arcade.Medium:
		if that.rng.Float64() < mediumBlunder {
			return random
		}
	}

	if move := BestMove(that.board); move >= 0 {
		return move
	}
	return empty[0]
}
