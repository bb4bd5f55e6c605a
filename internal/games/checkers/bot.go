package checkers

import (
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/games/minimax"
)

const (
	manValue  = 3
	kingValue = 5
	winScore  = 1000
)

var searchDepth = map[arcade.Difficulty]int{
	arcade.Medium: 3,
	arcade.Hard:   6,
}

// Turn is every step one side makes before the other side moves.
type Turn []Move

type position struct {
	board  Board
	toMove Side
}

// turns expands multi-jumps so that every result ends with the turn passing.
func (that position) turns() []Turn {
	var turns []Turn

	var expand func(board Board, forced *arcade.Position, prefix Turn)
	expand = func(board Board, forced *arcade.Position, prefix Turn) {
		for _, move := range board.LegalMoves(that.toMove, forced) {
			next := board
			turn := append(append(Turn(nil), prefix...), move)
			if next.play(move) {
				to := move.To
				expand(next, &to, turn)
				continue
			}
			turns = append(turns, turn)
		}
	}
	expand(that.board, nil, nil)

	return turns
}

// rules scores positions for the computer's side.
type rules struct {
	side Side
}

func (that rules) Moves(state position, _ bool) []Turn {
	return state.turns()
}

func (that rules) Play(state position, turn Turn, _ bool) position {
	for _, move := range turn {
		state.board.play(move)
	}
	state.toMove = state.toMove.Opponent()
	return state
}

func (that rules) Evaluate(state position, depth int) (int, bool) {
	if len(state.board.LegalMoves(state.toMove, nil)) == 0 {
		if state.toMove == that.side {
			return depth - winScore, true
		}
		return winScore - depth, true
	}

	return that.material(state.board, that.side) - that.material(state.board, that.side.Opponent()), false
}

func (that rules) material(board Board, side Side) int {
	men, kings := board.count(side)
	return men*manValue + kings*kingValue
}

// BestTurn - the turn minimax picks for side looking depth turns ahead.
func BestTurn(board Board, side Side, depth int) (Turn, bool) {
	result := minimax.Search[position, Turn](rules{side: side}, position{board: board, toMove: side}, depth, true)
	return result.Move, result.Found
}

// aiTurn plays the computer's whole turn.
func (that *Game) aiTurn() {
	depth, smart := searchDepth[that.difficulty]
	if smart {
		if turn, ok := BestTurn(that.board, that.turn, depth); ok {
			for _, move := range turn {
				that.play(move)
			}
			return
		}
	}

	side := that.turn
	for that.turn == side && that.status != arcade.StatusFinished {
		moves := that.board.LegalMoves(that.turn, that.forced)
		if len(moves) == 0 {
			return
		}
		that.play(moves[that.rng.Intn(len(moves))])
	}
}
