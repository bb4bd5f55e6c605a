// Package snake implements the classic snake game on a fixed 20x20 grid.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gammazero/deque"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const (
	Size         = 20
	TickInterval = 150 * time.Millisecond

	ActionTurn = "turn"
)

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

var deltas = map[Direction]arcade.Position{
	Up:    {Row: -1},
	Down:  {Row: 1},
	Left:  {Col: -1},
	Right: {Col: 1},
}

var opposites = map[Direction]Direction{
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

func init() {
	arcade.Register(arcade.Entry{
		Kind:        arcade.KindSnake,
		Title:       "Snake",
		Description: "Eat the food, grow longer and stay off the walls.",
		Order:       1,
		Players:     1,
		Realtime:    true,
		New: func(opts arcade.Options) (arcade.Game, error) {
			return New(opts.Seed), nil
		},
	})
}

type Game struct {
	rng *rand.Rand

	// head is at the front
	body      deque.Deque[arcade.Position]
	food      arcade.Position
	direction Direction
	// moved is the direction of the last applied step, reversals are checked against it
	moved  Direction
	score  int
	status arcade.Status
	won    bool
}

// New - starts a game with the snake in the middle heading right.
func New(seed int64) *Game {
	game := &Game{rng: rand.New(rand.NewSource(seed))} //nolint: gosec // game randomness
	game.reset()

	return game
}

func (that *Game) reset() {
	that.body.Clear()
	that.body.PushFront(arcade.Position{Row: 10, Col: 10})
	that.food = arcade.Position{Row: 5, Col: 5}
	that.direction = Right
	that.moved = Right
	that.score = 0
	that.status = arcade.StatusOngoing
	that.won = false
}

func (that *Game) Kind() arcade.Kind {
	return arcade.KindSnake
}

func (that *Game) Status() arcade.Status {
	return that.status
}

func (that *Game) TickInterval() time.Duration {
	return TickInterval
}

func (that *Game) Score() int {
	return that.score
}

func (that *Game) Head() arcade.Position {
	return that.body.Front()
}

func (that *Game) Len() int {
	return that.body.Len()
}

func (that *Game) Apply(in arcade.Input) error {
	switch in.Action {
	case ActionTurn:
		return that.Turn(Direction(in.Direction))
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, in.Action)
	}
}

// Turn - changes heading, a reversal of the last step is silently ignored.
func (that *Game) Turn(direction Direction) error {
	if _, ok := deltas[direction]; !ok {
		return fmt.Errorf("%w: direction %q", apperror.ErrInvalidMove, direction)
	}

	if that.status == arcade.StatusFinished {
		return apperror.ErrGameFinished
	}

	if opposites[that.moved] == direction {
		return nil
	}

	that.direction = direction

	return nil
}

// Tick - moves the snake one cell.
func (that *Game) Tick() bool {
	if that.status != arcade.StatusOngoing {
		return false
	}

	delta := deltas[that.direction]
	head := that.body.Front().Add(delta.Row, delta.Col)
	that.moved = that.direction

	if that.collides(head) {
		that.status = arcade.StatusFinished
		return true
	}

	that.body.PushFront(head)

	if head == that.food {
		that.score++
		if !that.spawnFood() {
			that.won = true
			that.status = arcade.StatusFinished
		}
		return true
	}

	that.body.PopBack()

	return true
}

// collides checks walls and every current segment, tail included.
func (that *Game) collides(head arcade.Position) bool {
	if !head.In(Size, Size) {
		return true
	}

	return that.occupied(head)
}

func (that *Game) occupied(pos arcade.Position) bool {
	for i := 0; i < that.body.Len(); i++ {
		if that.body.At(i) == pos {
			return true
		}
	}
	return false
}

// spawnFood places food on a random free cell and reports false when the board is full.
func (that *Game) spawnFood() bool {
	free := make([]arcade.Position, 0, Size*Size-that.body.Len())
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			pos := arcade.Position{Row: row, Col: col}
			if !that.occupied(pos) {
				free = append(free, pos)
			}
		}
	}

	if len(free) == 0 {
		return false
	}

	that.food = free[that.rng.Intn(len(free))]

	return true
}

func (that *Game) segments() []arcade.Position {
	segments := make([]arcade.Position, 0, that.body.Len())
	for i := 0; i < that.body.Len(); i++ {
		segments = append(segments, that.body.At(i))
	}
	return segments
}
