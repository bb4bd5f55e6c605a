// Package tictactoe implements tic-tac-toe for two players at one keyboard or
// against a minimax opponent.
package tictactoe

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	ActionMark = "mark"

	boardSize = 3
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func init() {
	arcade.Register(arcade.Entry{
		Kind:         arcade.KindTicTacToe,
		Title:        "Tic Tac Toe",
		Description:  "Get three in a row against a friend or the computer.",
		Order:        4,
		Players:      2,
		Difficulties: []arcade.Difficulty{arcade.Easy, arcade.Medium, arcade.Hard},
		Modes:        []arcade.Mode{arcade.ModeAI, arcade.ModePvP},
		New: func(opts arcade.Options) (arcade.Game, error) {
			return New(opts.Mode, opts.Difficulty, opts.Seed), nil
		},
	})
}

type Board [9]string

type Game struct {
	rng        *rand.Rand
	mode       arcade.Mode
	difficulty arcade.Difficulty

	board        Board
	turn         string
	winner       string
	winningCells []int
	status       arcade.Status
}

// New - X always moves first, in ai mode the computer plays O.
func New(mode arcade.Mode, difficulty arcade.Difficulty, seed int64) *Game {
	if mode != arcade.ModePvP {
		mode = arcade.ModeAI
	}

	return &Game{
		rng:        rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
		mode:       mode,
		difficulty: difficulty,
		turn:       PlayerX,
		status:     arcade.StatusOngoing,
	}
}

func (that *Game) Kind() arcade.Kind {
	return arcade.KindTicTacToe
}

func (that *Game) Status() arcade.Status {
	return that.status
}

func (that *Game) Winner() string {
	return that.winner
}

func (that *Game) Tick() bool {
	return false
}

func (that *Game) TickInterval() time.Duration {
	return 0
}

func (that *Game) Apply(in arcade.Input) error {
	if in.Action != ActionMark {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, in.Action)
	}

	cell := -1
	switch {
	case in.Cell != nil:
		cell = *in.Cell
	case in.At != nil && in.At.In(boardSize, boardSize):
		cell = in.At.Row*boardSize + in.At.Col
	}

	if err := that.MakeTurn(that.turn, cell); err != nil {
		return err
	}

	if that.mode == arcade.ModeAI && !that.IsFinished() {
		if err := that.MakeTurn(PlayerO, that.aiMove()); err != nil {
			return fmt.Errorf("failed to make ai turn: %w", err)
		}
	}

	return nil
}

func (that *Game) IsFinished() bool {
	return that.status == arcade.StatusFinished
}

// MakeTurn - places the mark of player on cell.
func (that *Game) MakeTurn(player string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.validateMove(player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.board[cell] = player
	that.updateGameStatus(player)

	return nil
}

// validateMove - checks if the move is valid.
func (that *Game) validateMove(player string, cell int) error {
	if cell < 0 || cell >= len(that.board) {
		return apperror.ErrInvalidCell
	}

	if that.turn != player {
		return apperror.ErrNotYourTurn
	}

	if that.board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func (that *Game) updateGameStatus(player string) {
	winner, cells := checkGameStatus(that.board)
	switch winner {
	case PlayerX, PlayerO, PlayerTie:
		that.winner = winner
		that.winningCells = cells
		that.status = arcade.StatusFinished
	default:
		that.turn = toggleMark(player)
	}
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// checkGameStatus - returns the winner with the winning line, the tie mark
// for a full board or an empty string while the game goes on.
func checkGameStatus(board Board) (string, []int) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, combo[:]
		}
	}

	if len(board.emptyCells()) == 0 {
		return PlayerTie, nil
	}

	return "", nil
}

func (that Board) emptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}
