// Package checkers implements English draughts with mandatory captures and
// multi-jumps.
package checkers

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

const ActionMove = "move"

func init() {
	arcade.Register(arcade.Entry{
		Kind:         arcade.KindCheckers,
		Title:        "Checkers",
		Description:  "Jump over every enemy piece, captures are mandatory.",
		Order:        5,
		Players:      2,
		Difficulties: []arcade.Difficulty{arcade.Easy, arcade.Medium, arcade.Hard},
		Modes:        []arcade.Mode{arcade.ModeAI, arcade.ModePvP},
		New: func(opts arcade.Options) (arcade.Game, error) {
			side := Side(opts.Side)
			switch side {
			case "":
				side = Black
			case Red, Black:
			default:
				return nil, fmt.Errorf("%w: side %q", apperror.ErrInvalidOptions, opts.Side)
			}

			return New(opts.Mode, opts.Difficulty, side, opts.Seed), nil
		},
	})
}

type Game struct {
	rng        *rand.Rand
	mode       arcade.Mode
	difficulty arcade.Difficulty
	player     Side

	board  Board
	turn   Side
	forced *arcade.Position
	winner Side
	status arcade.Status
}

// New - black moves first. Against the computer the player picks a side, the
// computer opens when the player took red.
func New(mode arcade.Mode, difficulty arcade.Difficulty, player Side, seed int64) *Game {
	if mode != arcade.ModePvP {
		mode = arcade.ModeAI
	}
	if player != Red {
		player = Black
	}

	game := &Game{
		rng:        rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
		mode:       mode,
		difficulty: difficulty,
		player:     player,
		board:      NewBoard(),
		turn:       Black,
		status:     arcade.StatusOngoing,
	}

	if game.computerToMove() {
		game.aiTurn()
	}

	return game
}

func (that *Game) Kind() arcade.Kind {
	return arcade.KindCheckers
}

func (that *Game) Status() arcade.Status {
	return that.status
}

func (that *Game) Turn() Side {
	return that.turn
}

func (that *Game) Winner() Side {
	return that.winner
}

func (that *Game) Tick() bool {
	return false
}

func (that *Game) TickInterval() time.Duration {
	return 0
}

func (that *Game) computerToMove() bool {
	return that.mode == arcade.ModeAI && that.turn != that.player && that.status != arcade.StatusFinished
}

func (that *Game) Apply(in arcade.Input) error {
	if in.Action != ActionMove {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, in.Action)
	}
	if in.From == nil || in.To == nil {
		return apperror.ErrInvalidMove
	}

	if err := that.Move(Move{From: *in.From, To: *in.To}); err != nil {
		return err
	}

	if that.computerToMove() {
		that.aiTurn()
	}

	return nil
}

// Move - plays one step for the side to move.
func (that *Game) Move(move Move) error {
	if that.status == arcade.StatusFinished {
		return apperror.ErrGameFinished
	}

	if that.computerToMove() {
		return apperror.ErrNotYourTurn
	}

	if !slices.Contains(that.board.LegalMoves(that.turn, that.forced), move) {
		return fmt.Errorf("%w: %d,%d to %d,%d", apperror.ErrInvalidMove, move.From.Row, move.From.Col, move.To.Row, move.To.Col)
	}

	that.play(move)

	return nil
}

// play applies a legal move and passes the turn unless a jump has to continue.
func (that *Game) play(move Move) {
	if that.board.play(move) {
		to := move.To
		that.forced = &to
		return
	}

	that.forced = nil
	that.turn = that.turn.Opponent()

	if len(that.board.LegalMoves(that.turn, nil)) == 0 {
		that.winner = that.turn.Opponent()
		that.status = arcade.StatusFinished
	}
}
