package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGamePaused       = errors.New("game is paused")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoActiveSession  = errors.New("no active session")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrInvalidMove      = errors.New("invalid move")
	ErrUnknownGame      = errors.New("unknown game")
	ErrUnknownAction    = errors.New("unknown action")
	ErrInvalidOptions   = errors.New("invalid game options")
	ErrNotFound         = errors.New("not found")
)
