package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

var ErrUnknownSessionStatus = errors.New("unknown session status")

// Session is one game a player is playing. State holds the engine's own
// serialization and never leaves the server.
type Session struct {
	ID        string          `json:"id"`
	PlayerID  string          `json:"player_id"`
	Kind      arcade.Kind     `json:"kind"`
	Options   arcade.Options  `json:"options"`
	Status    arcade.Status   `json:"status"`
	State     json.RawMessage `json:"state,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewSession(id, playerID string, kind arcade.Kind, opts arcade.Options, now time.Time) *Session {
	return &Session{
		ID:        id,
		PlayerID:  playerID,
		Kind:      kind,
		Options:   opts,
		Status:    arcade.StatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (that *Session) IsFinished() bool {
	return that.Status == arcade.StatusFinished
}

func (that *Session) IsOngoing() bool {
	return that.Status == arcade.StatusOngoing
}

func (that *Session) IsWaiting() bool {
	return that.Status == arcade.StatusWaiting
}

func (that *Session) IsPaused() bool {
	return that.Status == arcade.StatusPaused
}

// ConfirmOngoingState - returns the reason the session does not accept moves.
func (that *Session) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsPaused():
		return apperror.ErrGamePaused
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSessionStatus, that.Status)
	}
}

// Touch - records the engine state and status.
func (that *Session) Touch(status arcade.Status, state json.RawMessage, now time.Time) {
	that.Status = status
	that.State = state
	that.UpdatedAt = now
}
