// Package minesweeper implements the classic mine clearing puzzle with a safe
// first reveal.
package minesweeper

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const (
	ActionReveal = "reveal"
	ActionFlag   = "flag"

	minSize = 5
	maxSize = 30
	// the first reveal and its neighbours never hold a mine
	safeArea = 9
)

type Preset struct {
	Size  int
	Mines int
}

var presets = map[arcade.Difficulty]Preset{
	arcade.Easy:   {Size: 8, Mines: 10},
	arcade.Medium: {Size: 12, Mines: 30},
	arcade.Hard:   {Size: 16, Mines: 60},
}

func init() {
	arcade.Register(arcade.Entry{
		Kind:         arcade.KindMinesweeper,
		Title:        "Minesweeper",
		Description:  "Clear the board without hitting a mine.",
		Order:        3,
		Players:      1,
		Difficulties: []arcade.Difficulty{arcade.Easy, arcade.Medium, arcade.Hard},
		New: func(opts arcade.Options) (arcade.Game, error) {
			rows, cols, mines := opts.Height, opts.Width, opts.Mines
			if rows == 0 && cols == 0 && mines == 0 {
				preset := presets[opts.Difficulty]
				rows, cols, mines = preset.Size, preset.Size, preset.Mines
			}

			return New(rows, cols, mines, opts.Seed)
		},
	})
}

type cell struct {
	mine      bool
	revealed  bool
	flagged   bool
	neighbors int
}

type Game struct {
	rng  *rand.Rand
	seed int64

	rows  int
	cols  int
	mines int
	cells [][]cell

	placed   bool
	flags    int
	revealed int
	status   arcade.Status
	won      bool
	lost     *arcade.Position
}

// New - creates an empty board, mines are placed on the first reveal.
func New(rows, cols, mines int, seed int64) (*Game, error) {
	if rows < minSize || rows > maxSize || cols < minSize || cols > maxSize {
		return nil, fmt.Errorf("%w: board %dx%d", apperror.ErrInvalidOptions, rows, cols)
	}
	if mines < 1 || mines > rows*cols-safeArea {
		return nil, fmt.Errorf("%w: %d mines on %dx%d", apperror.ErrInvalidOptions, mines, rows, cols)
	}

	return newGame(rows, cols, mines, seed), nil
}

func newGame(rows, cols, mines int, seed int64) *Game {
	cells := make([][]cell, rows)
	for row := range cells {
		cells[row] = make([]cell, cols)
	}

	return &Game{
		rng:    rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
		seed:   seed,
		rows:   rows,
		cols:   cols,
		mines:  mines,
		cells:  cells,
		status: arcade.StatusOngoing,
	}
}

func (that *Game) Kind() arcade.Kind {
	return arcade.KindMinesweeper
}

func (that *Game) Status() arcade.Status {
	return that.status
}

func (that *Game) Won() bool {
	return that.won
}

func (that *Game) Flags() int {
	return that.flags
}

func (that *Game) Tick() bool {
	return false
}

func (that *Game) TickInterval() time.Duration {
	return 0
}

func (that *Game) Apply(in arcade.Input) error {
	if that.status == arcade.StatusFinished {
		return apperror.ErrGameFinished
	}

	if in.At == nil || !in.At.In(that.rows, that.cols) {
		return apperror.ErrInvalidCell
	}

	switch in.Action {
	case ActionReveal:
		that.Reveal(*in.At)
	case ActionFlag:
		that.ToggleFlag(*in.At)
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, in.Action)
	}

	return nil
}

func (that *Game) at(pos arcade.Position) *cell {
	return &that.cells[pos.Row][pos.Col]
}

func (that *Game) neighbors(pos arcade.Position, visit func(arcade.Position)) {
	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			next := pos.Add(dRow, dCol)
			if (dRow != 0 || dCol != 0) && next.In(that.rows, that.cols) {
				visit(next)
			}
		}
	}
}

// Reveal - opens a cell, flagged and revealed cells are left alone.
func (that *Game) Reveal(pos arcade.Position) {
	if that.status == arcade.StatusFinished {
		return
	}

	target := that.at(pos)
	if target.flagged || target.revealed {
		return
	}

	if !that.placed {
		that.placeMines(pos)
	}

	if target.mine {
		that.explode(pos)
		return
	}

	that.flood(pos)

	if that.revealed == that.rows*that.cols-that.mines {
		that.status = arcade.StatusFinished
		that.won = true
	}
}

func (that *Game) ToggleFlag(pos arcade.Position) {
	target := that.at(pos)
	if that.status == arcade.StatusFinished || target.revealed {
		return
	}

	target.flagged = !target.flagged
	if target.flagged {
		that.flags++
	} else {
		that.flags--
	}
}

func (that *Game) explode(pos arcade.Position) {
	for row := range that.cells {
		for col := range that.cells[row] {
			if that.cells[row][col].mine {
				that.cells[row][col].revealed = true
			}
		}
	}

	that.lost = &pos
	that.status = arcade.StatusFinished
}

// placeMines scatters mines outside the 3x3 square around the first reveal.
func (that *Game) placeMines(first arcade.Position) {
	candidates := make([]arcade.Position, 0, that.rows*that.cols)
	for row := range that.rows {
		for col := range that.cols {
			if abs(row-first.Row) > 1 || abs(col-first.Col) > 1 {
				candidates = append(candidates, arcade.Position{Row: row, Col: col})
			}
		}
	}

	that.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, pos := range candidates[:min(that.mines, len(candidates))] {
		that.at(pos).mine = true
	}

	that.countNeighbors()
	that.placed = true
}

func (that *Game) countNeighbors() {
	for row := range that.cells {
		for col := range that.cells[row] {
			pos := arcade.Position{Row: row, Col: col}
			count := 0
			that.neighbors(pos, func(next arcade.Position) {
				if that.at(next).mine {
					count++
				}
			})
			that.cells[row][col].neighbors = count
		}
	}
}

func (that *Game) isLost(row, col int) bool {
	return that.lost != nil && that.lost.Row == row && that.lost.Col == col
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
