package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	request, err := msg.request()
	if err != nil {
		that.sendError(conn, msg.Action, errMalformedMessage)
		return err
	}

	id := conn.cookieID
	if request.Player != nil && request.Player.ID != "" {
		id = request.Player.ID
	}

	player, err := that.uSession.GetOrCreatePlayer(ctx, id)
	if err != nil {
		that.sendError(conn, msg.Action, err)
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	that.register(conn, player.ID)

	payload := Payload{Player: player}

	if player.InSession() {
		update, err := that.uSession.GetSession(ctx, player.ID)
		switch {
		case errors.Is(err, apperror.ErrNoActiveSession):
			log.Info("stored session expired", "playerID", player.ID)
		case err != nil:
			log.Error("failed to get session", "playerID", player.ID, "error", err)
		default:
			payload.Game = update
		}
	}

	if err = conn.send(msg.Action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	playerID, request, ok := that.prepare(conn, msg)
	if !ok {
		return nil
	}

	if request.Game == nil {
		that.sendError(conn, msg.Action, errGameRequired)
		return nil
	}

	update, err := that.uSession.StartSession(ctx, playerID, request.Game.Kind, request.Game.Options)
	if err != nil {
		that.sendError(conn, msg.Action, err)
		return fmt.Errorf("failed to start session: %w", err)
	}

	log.Info("game started", "playerID", playerID, "kind", update.Kind, "sessionID", update.SessionID)

	return conn.send(msg.Action, Payload{Game: update})
}

func (that *Server) handleGameInput(ctx context.Context, conn *connection, msg *Message) error {
	playerID, request, ok := that.prepare(conn, msg)
	if !ok {
		return nil
	}

	if request.Input == nil {
		that.sendError(conn, msg.Action, errInputRequired)
		return nil
	}

	update, err := that.uSession.HandleInput(ctx, playerID, *request.Input)
	if err != nil {
		that.sendError(conn, msg.Action, err)
		return nil
	}

	return conn.send(msg.Action, Payload{Game: update})
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, msg *Message) error {
	playerID, _, ok := that.prepare(conn, msg)
	if !ok {
		return nil
	}

	update, err := that.uSession.GetSession(ctx, playerID)
	if err != nil {
		that.sendError(conn, msg.Action, err)
		return nil
	}

	return conn.send(msg.Action, Payload{Game: update})
}

func (that *Server) handleGameLeave(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave")

	playerID, _, ok := that.prepare(conn, msg)
	if !ok {
		return nil
	}

	if err := that.uSession.EndSession(ctx, playerID); err != nil {
		that.sendError(conn, msg.Action, err)
		return nil
	}

	log.Info("player left the game", "playerID", playerID)

	return conn.send(msg.Action, Payload{})
}

// prepare - decodes the payload of a message that needs a connected player.
func (that *Server) prepare(conn *connection, msg *Message) (string, *Request, bool) {
	playerID := conn.player()
	if playerID == "" {
		that.sendError(conn, msg.Action, errNotConnected)
		return "", nil, false
	}

	request, err := msg.request()
	if err != nil {
		that.sendError(conn, msg.Action, errMalformedMessage)
		return "", nil, false
	}

	return playerID, request, true
}

func (that *Server) sendError(conn *connection, action string, err error) {
	if sendErr := conn.send(action, Payload{Error: publicError(err)}); sendErr != nil {
		that.logger.Error("failed to send error response", "method", "sendError", "error", sendErr)
	}
}
