package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/usecase"
)

const (
	ActionConnect    = "connect"
	ActionGameNew    = "game:new"
	ActionGameInput  = "game:input"
	ActionGameState  = "game:state"
	ActionGameLeave  = "game:leave"
	ActionGameUpdate = "game:update"
	ActionError      = "error"
)

var (
	errMalformedMessage = errors.New("malformed message")
	errUnknownAction    = errors.New("unknown action")
	errNotConnected     = errors.New("send connect first")
	errGameRequired     = errors.New("game is required")
	errInputRequired    = errors.New("input is required")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// GameRequest selects the game to start.
type GameRequest struct {
	Kind    arcade.Kind    `json:"kind"`
	Options arcade.Options `json:"options"`
}

type Payload struct {
	Player *entity.Player  `json:"player,omitempty"`
	Game   *usecase.Update `json:"game,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type Request struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameRequest   `json:"game,omitempty"`
	Input  *arcade.Input  `json:"input,omitempty"`
}

func (that *Message) request() (*Request, error) {
	var request Request
	if len(that.Payload) == 0 {
		return &request, nil
	}

	if err := json.Unmarshal(that.Payload, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &request, nil
}

type connection struct {
	ws       *websocket.Conn
	cookieID string

	writeMu sync.Mutex

	mu       sync.Mutex
	playerID string
}

func (that *connection) player() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID
}

func (that *connection) setPlayer(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.playerID = id
}

func (that *connection) send(action string, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: data})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.ws.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// publicError - the text a client may see for err.
func publicError(err error) string {
	known := []error{
		errMalformedMessage, errUnknownAction, errNotConnected, errGameRequired, errInputRequired,
		apperror.ErrGameFinished, apperror.ErrGameIsNotStarted, apperror.ErrGamePaused,
		apperror.ErrNotYourTurn, apperror.ErrNoActiveSession, apperror.ErrCellOccupied,
		apperror.ErrInvalidCell, apperror.ErrInvalidMove, apperror.ErrUnknownGame,
		apperror.ErrUnknownAction, apperror.ErrInvalidOptions,
	}

	for _, target := range known {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return "internal error"
}
