package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/usecase"
)

const (
	sessionCookie = "user_session"
	writeTimeout  = 5 * time.Second
)

type uSession interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	StartSession(ctx context.Context, playerID string, kind arcade.Kind, opts arcade.Options) (*usecase.Update, error)
	HandleInput(ctx context.Context, playerID string, in arcade.Input) (*usecase.Update, error)
	GetSession(ctx context.Context, playerID string) (*usecase.Update, error)
	SuspendSession(ctx context.Context, playerID string) error
	EndSession(ctx context.Context, playerID string) error
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger   *slog.Logger
	uSession uSession
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*connection
}

func New(logger *slog.Logger, uSession uSession) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		uSession: uSession,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*connection),
	}

	server.handlers[ActionConnect] = server.handleConnect
	server.handlers[ActionGameNew] = server.handleNewGame
	server.handlers[ActionGameInput] = server.handleGameInput
	server.handlers[ActionGameState] = server.handleGameState
	server.handlers[ActionGameLeave] = server.handleGameLeave

	return server
}

// Handler - the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server, it stops when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Publish - pushes a clock driven update to the player, if connected.
func (that *Server) Publish(playerID string, update *usecase.Update) {
	that.connectionsMutex.RLock()
	conn, ok := that.connections[playerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		return
	}

	if err := conn.send(ActionGameUpdate, Payload{Game: update}); err != nil {
		that.logger.Debug("failed to push update", "method", "Publish", "playerID", playerID, "error", err)
	}
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	playerID, header := that.sessionCookie(req)

	ws, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws, cookieID: playerID}
	defer that.handleDisconnect(ctx, conn)

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		messageType, data, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.sendError(conn, ActionError, errMalformedMessage)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(conn, message.Action, errUnknownAction)
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// handleDisconnect - forgets the connection and parks the player's session.
func (that *Server) handleDisconnect(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleDisconnect")

	_ = conn.ws.Close()

	playerID := conn.player()
	if playerID == "" {
		return
	}

	that.connectionsMutex.Lock()
	current, ok := that.connections[playerID]
	if ok && current == conn {
		delete(that.connections, playerID)
	}
	that.connectionsMutex.Unlock()

	if !ok || current != conn {
		return
	}

	if err := that.uSession.SuspendSession(context.WithoutCancel(ctx), playerID); err != nil {
		log.Error("failed to suspend session", "playerID", playerID, "error", err)
	}

	log.Info("player disconnected", "playerID", playerID)
}

// sessionCookie - reads the player id from the cookie, or creates one and
// returns the header that sets it.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	log := that.logger.With("method", "setSessionCookie")

	cookie, err := req.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return cookie.Value, nil
	}

	cookie = &http.Cookie{
		Name:     sessionCookie,
		Value:    uuid.NewString(),
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/ws",
		HttpOnly: true,
	}
	log.Info("session cookie not found, new one created", "cookie", cookie.Value)

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}

func (that *Server) register(conn *connection, playerID string) {
	conn.setPlayer(playerID)

	that.connectionsMutex.Lock()
	previous, ok := that.connections[playerID]
	that.connections[playerID] = conn
	that.connectionsMutex.Unlock()

	if ok && previous != conn {
		// the newest tab wins
		_ = previous.ws.Close()
	}
}
