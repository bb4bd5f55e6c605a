package checkers

import (
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const Size = 8

type Side string

const (
	Red   Side = "red"
	Black Side = "black"
)

func (that Side) Opponent() Side {
	if that == Red {
		return Black
	}
	return Red
}

// forward is the row direction men of the side move in.
func (that Side) forward() int {
	if that == Red {
		return 1
	}
	return -1
}

// crownRow is the far row where men of the side become kings.
func (that Side) crownRow() int {
	if that == Red {
		return Size - 1
	}
	return 0
}

type Piece byte

const (
	Empty     Piece = '.'
	RedMan    Piece = 'r'
	RedKing   Piece = 'R'
	BlackMan  Piece = 'b'
	BlackKing Piece = 'B'
)

func (that Piece) Side() Side {
	switch that {
	case RedMan, RedKing:
		return Red
	case BlackMan, BlackKing:
		return Black
	default:
		return ""
	}
}

func (that Piece) King() bool {
	return that == RedKing || that == BlackKing
}

func (that Piece) crowned() Piece {
	switch that {
	case RedMan:
		return RedKing
	case BlackMan:
		return BlackKing
	default:
		return that
	}
}

type Move struct {
	From arcade.Position `json:"from"`
	To   arcade.Position `json:"to"`
}

func (that Move) Capture() bool {
	return abs(that.To.Row-that.From.Row) == 2
}

func (that Move) captured() arcade.Position {
	return arcade.Position{Row: (that.From.Row + that.To.Row) / 2, Col: (that.From.Col + that.To.Col) / 2}
}

type Board [Size][Size]Piece

// NewBoard - red fills the dark squares of rows 0-2, black rows 5-7.
func NewBoard() Board {
	var board Board
	for row := range Size {
		for col := range Size {
			switch {
			case (row+col)%2 == 0:
				board[row][col] = Empty
			case row < 3:
				board[row][col] = RedMan
			case row >= Size-3:
				board[row][col] = BlackMan
			default:
				board[row][col] = Empty
			}
		}
	}
	return board
}

func (that *Board) at(pos arcade.Position) Piece {
	return that[pos.Row][pos.Col]
}

func (that *Board) directions(piece Piece) []int {
	if piece.King() {
		return []int{-1, 1}
	}
	return []int{piece.Side().forward()}
}

// pieceMoves lists the simple moves and the captures of the piece at from.
func (that *Board) pieceMoves(from arcade.Position) (steps, jumps []Move) {
	piece := that.at(from)
	if piece.Side() == "" {
		return nil, nil
	}

	for _, dRow := range that.directions(piece) {
		for _, dCol := range []int{-1, 1} {
			next := from.Add(dRow, dCol)
			if !next.In(Size, Size) {
				continue
			}

			if that.at(next) == Empty {
				steps = append(steps, Move{From: from, To: next})
				continue
			}

			landing := next.Add(dRow, dCol)
			if landing.In(Size, Size) && that.at(landing) == Empty && that.at(next).Side() == piece.Side().Opponent() {
				jumps = append(jumps, Move{From: from, To: landing})
			}
		}
	}

	return steps, jumps
}

// LegalMoves - moves available to side. Captures are mandatory, and while a
// piece is in the middle of a multi-jump only its captures count.
func (that *Board) LegalMoves(side Side, forced *arcade.Position) []Move {
	if forced != nil {
		_, jumps := that.pieceMoves(*forced)
		return jumps
	}

	var steps, jumps []Move
	for row := range Size {
		for col := range Size {
			from := arcade.Position{Row: row, Col: col}
			if that.at(from).Side() != side {
				continue
			}
			pieceSteps, pieceJumps := that.pieceMoves(from)
			steps = append(steps, pieceSteps...)
			jumps = append(jumps, pieceJumps...)
		}
	}

	if len(jumps) > 0 {
		return jumps
	}
	return steps
}

// play moves the piece, removes a captured one and crowns. It reports whether
// the same piece has to keep jumping.
func (that *Board) play(move Move) (again bool) {
	piece := that.at(move.From)
	that[move.From.Row][move.From.Col] = Empty

	crowned := !piece.King() && move.To.Row == piece.Side().crownRow()
	if crowned {
		piece = piece.crowned()
	}
	that[move.To.Row][move.To.Col] = piece

	if !move.Capture() {
		return false
	}

	captured := move.captured()
	that[captured.Row][captured.Col] = Empty

	if crowned {
		return false
	}

	_, jumps := that.pieceMoves(move.To)
	return len(jumps) > 0
}

func (that *Board) count(side Side) (men, kings int) {
	for row := range Size {
		for col := range Size {
			piece := that[row][col]
			if piece.Side() != side {
				continue
			}
			if piece.King() {
				kings++
			} else {
				men++
			}
		}
	}
	return men, kings
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
