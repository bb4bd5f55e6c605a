// Package arcade holds the contract every game engine implements, the catalog
// of registered games and the clock that drives realtime games.
package arcade

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
)

type Kind string

const (
	KindSnake       Kind = "snake"
	KindTetris      Kind = "tetris"
	KindMinesweeper Kind = "minesweeper"
	KindTicTacToe   Kind = "tictactoe"
	KindCheckers    Kind = "checkers"
	KindFlappyBird  Kind = "flappybird"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty - accepts any casing, empty means Medium.
func ParseDifficulty(value string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(value))) {
	case "", Medium:
		return Medium, nil
	case Easy:
		return Easy, nil
	case Hard:
		return Hard, nil
	default:
		return "", fmt.Errorf("%w: difficulty %q", apperror.ErrInvalidOptions, value)
	}
}

type Mode string

const (
	ModeSolo Mode = ""
	ModePvP  Mode = "pvp"
	ModeAI   Mode = "ai"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusOngoing  Status = "ongoing"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) Add(dRow, dCol int) Position {
	return Position{Row: that.Row + dRow, Col: that.Col + dCol}
}

func (that Position) In(rows, cols int) bool {
	return that.Row >= 0 && that.Row < rows && that.Col >= 0 && that.Col < cols
}

// Input is a single player intent, the server side equivalent of a key press or a tap.
type Input struct {
	Action    string    `json:"action"`
	Direction string    `json:"direction,omitempty"`
	Cell      *int      `json:"cell,omitempty"`
	At        *Position `json:"at,omitempty"`
	From      *Position `json:"from,omitempty"`
	To        *Position `json:"to,omitempty"`
}

const (
	ActionRestart = "restart"
	ActionPause   = "pause"
)

// Options are fixed when a game is created.
type Options struct {
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Mode       Mode       `json:"mode,omitempty"`
	Side       string     `json:"side,omitempty"`
	Seed       int64      `json:"seed,omitempty"`

	// custom minesweeper board, zero values fall back to the difficulty preset
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	Mines  int `json:"mines,omitempty"`
}

// Normalize - fills defaults and validates the enum fields.
func (that Options) Normalize() (Options, error) {
	difficulty, err := ParseDifficulty(string(that.Difficulty))
	if err != nil {
		return that, err
	}
	that.Difficulty = difficulty

	switch that.Mode {
	case ModeSolo, ModePvP, ModeAI:
	default:
		return that, fmt.Errorf("%w: mode %q", apperror.ErrInvalidOptions, that.Mode)
	}

	return that, nil
}
