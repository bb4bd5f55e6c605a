// Package tetris implements a falling blocks game with wall kicks, combos and
// back-to-back bonuses.
package tetris

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const (
	Cols = 10
	Rows = 20

	linesPerLevel = 8
	minInterval   = 50 * time.Millisecond
)

const (
	ActionLeft   = "left"
	ActionRight  = "right"
	ActionDown   = "down"
	ActionDrop   = "drop"
	ActionRotate = "rotate"
)

type Settings struct {
	InitialSpeed    float64
	SpeedDecrease   float64
	ScoreMultiplier float64
}

var difficulties = map[arcade.Difficulty]Settings{
	arcade.Easy:   {InitialSpeed: 400, SpeedDecrease: 25, ScoreMultiplier: 1.5},
	arcade.Medium: {InitialSpeed: 250, SpeedDecrease: 35, ScoreMultiplier: 2.5},
	arcade.Hard:   {InitialSpeed: 150, SpeedDecrease: 45, ScoreMultiplier: 4},
}

const (
	scoreSoftDrop = 2
	scoreHardDrop = 4
	scoreCombo    = 100
	maxCombo      = 10
	backToBack    = 2.0
)

var lineScores = [...]float64{0, 200, 600, 1200, 2000}

func init() {
	arcade.Register(arcade.Entry{
		Kind:         arcade.KindTetris,
		Title:        "Tetris",
		Description:  "Rotate the falling blocks and clear full lines.",
		Order:        2,
		Players:      1,
		Realtime:     true,
		Difficulties: []arcade.Difficulty{arcade.Easy, arcade.Medium, arcade.Hard},
		New: func(opts arcade.Options) (arcade.Game, error) {
			return New(opts.Difficulty, opts.Seed), nil
		},
	})
}

type Game struct {
	rng        *rand.Rand
	difficulty arcade.Difficulty
	settings   Settings

	board  [Rows][Cols]Type
	piece  Piece
	next   Type
	score  int
	level  int
	lines  int
	combo  int
	b2b    bool
	status arcade.Status
}

func New(difficulty arcade.Difficulty, seed int64) *Game {
	settings, ok := difficulties[difficulty]
	if !ok {
		difficulty, settings = arcade.Medium, difficulties[arcade.Medium]
	}

	game := &Game{
		rng:        rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
		difficulty: difficulty,
		settings:   settings,
		level:      1,
		status:     arcade.StatusOngoing,
	}
	game.piece = NewPiece(game.randomType())
	game.next = game.randomType()

	return game
}

func (that *Game) randomType() Type {
	return Types[that.rng.Intn(len(Types))]
}

func (that *Game) Kind() arcade.Kind {
	return arcade.KindTetris
}

func (that *Game) Status() arcade.Status {
	return that.status
}

func (that *Game) Score() int {
	return that.score
}

func (that *Game) Level() int {
	return that.level
}

func (that *Game) Lines() int {
	return that.lines
}

// TickInterval - gravity speeds up with the level but never below 50ms.
func (that *Game) TickInterval() time.Duration {
	ms := that.settings.InitialSpeed - that.settings.SpeedDecrease*math.Pow(float64(that.level), 1.2)
	interval := time.Duration(ms * float64(time.Millisecond))

	return max(interval, minInterval)
}

func (that *Game) Apply(in arcade.Input) error {
	if in.Action == arcade.ActionPause {
		return that.togglePause()
	}

	switch that.status {
	case arcade.StatusFinished:
		return apperror.ErrGameFinished
	case arcade.StatusPaused:
		return apperror.ErrGamePaused
	}

	switch in.Action {
	case ActionLeft:
		that.shift(-1, 0)
	case ActionRight:
		that.shift(1, 0)
	case ActionDown:
		that.fall()
	case ActionDrop:
		that.hardDrop()
	case ActionRotate:
		that.rotate()
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, in.Action)
	}

	return nil
}

func (that *Game) togglePause() error {
	switch that.status {
	case arcade.StatusOngoing:
		that.status = arcade.StatusPaused
	case arcade.StatusPaused:
		that.status = arcade.StatusOngoing
	default:
		return apperror.ErrGameFinished
	}
	return nil
}

// Tick - gravity, moves the piece down or locks it.
func (that *Game) Tick() bool {
	if that.status != arcade.StatusOngoing {
		return false
	}

	that.fall()

	return true
}

// fall - one row down, scored like a soft drop; a blocked piece locks instead.
func (that *Game) fall() {
	if !that.shift(0, 1) {
		that.lock()
		return
	}

	that.award(scoreSoftDrop * float64(that.level) * that.settings.ScoreMultiplier)
}

func (that *Game) collides(piece Piece, dx, dy int, shape [][]int) bool {
	if shape == nil {
		shape = piece.Shape
	}
	moved := Piece{Type: piece.Type, X: piece.X + dx, Y: piece.Y + dy, Shape: shape}

	hit := false
	moved.cells(func(x, y int) {
		if x < 0 || x >= Cols || y >= Rows || (y >= 0 && that.board[y][x] != 0) {
			hit = true
		}
	})

	return hit
}

func (that *Game) shift(dx, dy int) bool {
	if that.collides(that.piece, dx, dy, nil) {
		return false
	}

	that.piece.X += dx
	that.piece.Y += dy

	return true
}

func (that *Game) rotate() {
	rotated := Rotate(that.piece.Shape)

	for _, kick := range kicks {
		if !that.collides(that.piece, kick[0], kick[1], rotated) {
			that.piece.X += kick[0]
			that.piece.Y += kick[1]
			that.piece.Shape = rotated
			return
		}
	}
}

func (that *Game) hardDrop() {
	distance := 0
	for !that.collides(that.piece, 0, distance+1, nil) {
		distance++
	}

	that.piece.Y += distance
	that.award(float64(distance) * scoreHardDrop * float64(that.level) * that.settings.ScoreMultiplier)
	that.lock()
}

func (that *Game) award(points float64) {
	that.score += int(math.Floor(points))
}

// lock merges the piece, clears lines, scores and spawns the next piece.
func (that *Game) lock() {
	that.piece.cells(func(x, y int) {
		if y >= 0 {
			that.board[y][x] = that.piece.Type
		}
	})

	if that.piece.Y <= 0 {
		that.status = arcade.StatusFinished
		return
	}

	cleared := that.clearLines()
	tetris := cleared == len(lineScores)-1

	if cleared > 0 {
		points := lineScores[cleared] + scoreCombo*float64(min(that.combo+1, maxCombo))
		if tetris && that.b2b {
			points *= backToBack
		}
		that.award(points * math.Pow(float64(that.level), 1.5) * that.settings.ScoreMultiplier)
		that.combo++
	} else {
		that.combo = 0
	}

	that.b2b = tetris
	that.lines += cleared
	that.level = that.lines/linesPerLevel + 1

	that.piece = NewPiece(that.next)
	that.next = that.randomType()

	if that.collides(that.piece, 0, 0, nil) {
		that.status = arcade.StatusFinished
	}
}

// clearLines removes full rows, shifting everything above down.
func (that *Game) clearLines() int {
	var kept [Rows][Cols]Type
	target := Rows - 1
	cleared := 0

	for row := Rows - 1; row >= 0; row-- {
		if isFull(that.board[row]) {
			cleared++
			continue
		}
		kept[target] = that.board[row]
		target--
	}

	that.board = kept

	return cleared
}

func isFull(row [Cols]Type) bool {
	for _, cell := range row {
		if cell == 0 {
			return false
		}
	}
	return true
}
