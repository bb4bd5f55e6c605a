package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/games/checkers"
	"github.com/rocketscienceinc/arcade-backend/internal/games/flappybird"
	"github.com/rocketscienceinc/arcade-backend/internal/games/minesweeper"
	"github.com/rocketscienceinc/arcade-backend/internal/games/snake"
	"github.com/rocketscienceinc/arcade-backend/internal/games/tetris"
	"github.com/rocketscienceinc/arcade-backend/internal/games/tictactoe"
)

type Command int

const (
	CommandNone Command = iota
	CommandInput
	CommandQuit
)

var helps = map[arcade.Kind]string{
	arcade.KindSnake:       "arrows/wasd turn  r restart  q quit",
	arcade.KindTetris:      "←→ move  ↓ soft drop  ↑ rotate  space drop  p pause  r restart  q quit",
	arcade.KindMinesweeper: "arrows move  space reveal  f flag  r restart  q quit",
	arcade.KindTicTacToe:   "arrows move  space mark  r restart  q quit",
	arcade.KindCheckers:    "arrows move  space pick/drop  esc cancel  r restart  q quit",
	arcade.KindFlappyBird:  "space flap  r restart  q quit",
}

// Controller turns key presses into inputs for one kind of game. Board games
// get a cursor.
type Controller struct {
	kind     arcade.Kind
	cursor   arcade.Position
	selected *arcade.Position
	rows     int
	cols     int
}

func NewController(kind arcade.Kind) *Controller {
	return &Controller{kind: kind}
}

func (that *Controller) Help() string {
	return helps[that.kind]
}

// HasCursor - whether the game is played by pointing at cells.
func (that *Controller) HasCursor() bool {
	switch that.kind {
	case arcade.KindMinesweeper, arcade.KindTicTacToe, arcade.KindCheckers:
		return true
	default:
		return false
	}
}

func (that *Controller) Cursor() *arcade.Position {
	if !that.HasCursor() {
		return nil
	}
	cursor := that.cursor
	return &cursor
}

func (that *Controller) Selected() *arcade.Position {
	return that.selected
}

// SetBounds - keeps the cursor on a board of the given size.
func (that *Controller) SetBounds(rows, cols int) {
	that.rows, that.cols = rows, cols
	that.cursor.Row = clamp(that.cursor.Row, rows)
	that.cursor.Col = clamp(that.cursor.Col, cols)
}

// Reset - forgets the cursor state after a restart.
func (that *Controller) Reset() {
	that.cursor = arcade.Position{}
	that.selected = nil
}

// Key - maps one key press.
func (that *Controller) Key(ev *tcell.EventKey) (arcade.Input, Command) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return arcade.Input{}, CommandQuit
	case tcell.KeyEscape:
		if that.selected != nil {
			that.selected = nil
			return arcade.Input{}, CommandNone
		}
		return arcade.Input{}, CommandQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return arcade.Input{}, CommandQuit
		case 'r', 'R':
			that.selected = nil
			return arcade.Input{Action: arcade.ActionRestart}, CommandInput
		}
	}

	switch that.kind {
	case arcade.KindSnake:
		return that.snakeKey(ev)
	case arcade.KindTetris:
		return that.tetrisKey(ev)
	case arcade.KindFlappyBird:
		return that.flappyKey(ev)
	default:
		return that.boardKey(ev)
	}
}

func (that *Controller) snakeKey(ev *tcell.EventKey) (arcade.Input, Command) {
	direction, ok := arrow(ev)
	if !ok {
		return arcade.Input{}, CommandNone
	}

	return arcade.Input{Action: snake.ActionTurn, Direction: string(direction)}, CommandInput
}

func (that *Controller) tetrisKey(ev *tcell.EventKey) (arcade.Input, Command) {
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case ' ':
			return arcade.Input{Action: tetris.ActionDrop}, CommandInput
		case 'p', 'P':
			return arcade.Input{Action: arcade.ActionPause}, CommandInput
		}
	}

	direction, ok := arrow(ev)
	if !ok {
		return arcade.Input{}, CommandNone
	}

	actions := map[snake.Direction]string{
		snake.Left:  tetris.ActionLeft,
		snake.Right: tetris.ActionRight,
		snake.Down:  tetris.ActionDown,
		snake.Up:    tetris.ActionRotate,
	}

	return arcade.Input{Action: actions[direction]}, CommandInput
}

func (that *Controller) flappyKey(ev *tcell.EventKey) (arcade.Input, Command) {
	if ev.Key() == tcell.KeyUp || ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		return arcade.Input{Action: flappybird.ActionFlap}, CommandInput
	}

	return arcade.Input{}, CommandNone
}

func (that *Controller) boardKey(ev *tcell.EventKey) (arcade.Input, Command) {
	if direction, ok := arrow(ev); ok {
		that.move(direction)
		return arcade.Input{}, CommandNone
	}

	at := that.cursor
	primary := ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')

	switch {
	case that.kind == arcade.KindMinesweeper && ev.Key() == tcell.KeyRune && (ev.Rune() == 'f' || ev.Rune() == 'F'):
		return arcade.Input{Action: minesweeper.ActionFlag, At: &at}, CommandInput
	case !primary:
		return arcade.Input{}, CommandNone
	case that.kind == arcade.KindMinesweeper:
		return arcade.Input{Action: minesweeper.ActionReveal, At: &at}, CommandInput
	case that.kind == arcade.KindTicTacToe:
		return arcade.Input{Action: tictactoe.ActionMark, At: &at}, CommandInput
	case that.kind == arcade.KindCheckers:
		if that.selected == nil || *that.selected == at {
			that.toggleSelection(at)
			return arcade.Input{}, CommandNone
		}

		from := *that.selected
		that.selected = nil

		return arcade.Input{Action: checkers.ActionMove, From: &from, To: &at}, CommandInput
	default:
		return arcade.Input{}, CommandNone
	}
}

// Follow - keeps a checkers piece selected while it must keep jumping.
func (that *Controller) Follow(forced *arcade.Position) {
	if forced == nil {
		return
	}
	at := *forced
	that.selected = &at
}

func (that *Controller) toggleSelection(at arcade.Position) {
	if that.selected != nil {
		that.selected = nil
		return
	}
	that.selected = &at
}

func (that *Controller) move(direction snake.Direction) {
	switch direction {
	case snake.Up:
		that.cursor.Row--
	case snake.Down:
		that.cursor.Row++
	case snake.Left:
		that.cursor.Col--
	case snake.Right:
		that.cursor.Col++
	}

	if that.rows > 0 && that.cols > 0 {
		that.SetBounds(that.rows, that.cols)
	}
}

// arrow - arrow keys and wasd as a direction.
func arrow(ev *tcell.EventKey) (snake.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return snake.Up, true
	case tcell.KeyDown:
		return snake.Down, true
	case tcell.KeyLeft:
		return snake.Left, true
	case tcell.KeyRight:
		return snake.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return snake.Up, true
		case 's', 'S':
			return snake.Down, true
		case 'a', 'A':
			return snake.Left, true
		case 'd', 'D':
			return snake.Right, true
		}
	}

	return "", false
}

func clamp(value, size int) int {
	if value < 0 {
		return 0
	}
	if size > 0 && value >= size {
		return size - 1
	}
	return value
}
