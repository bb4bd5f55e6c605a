package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/usecase"
)

type sessionsMock struct {
	mock.Mock
}

func (that *sessionsMock) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (that *sessionsMock) StartSession(ctx context.Context, playerID string, kind arcade.Kind, opts arcade.Options) (*usecase.Update, error) {
	args := that.Called(ctx, playerID, kind, opts)
	update, _ := args.Get(0).(*usecase.Update)
	return update, args.Error(1)
}

func (that *sessionsMock) HandleInput(ctx context.Context, playerID string, in arcade.Input) (*usecase.Update, error) {
	args := that.Called(ctx, playerID, in)
	update, _ := args.Get(0).(*usecase.Update)
	return update, args.Error(1)
}

func (that *sessionsMock) GetSession(ctx context.Context, playerID string) (*usecase.Update, error) {
	args := that.Called(ctx, playerID)
	update, _ := args.Get(0).(*usecase.Update)
	return update, args.Error(1)
}

func (that *sessionsMock) SuspendSession(ctx context.Context, playerID string) error {
	return that.Called(ctx, playerID).Error(0)
}

func (that *sessionsMock) EndSession(ctx context.Context, playerID string) error {
	return that.Called(ctx, playerID).Error(0)
}

func startServer(t *testing.T, sessions *sessionsMock) (*Server, string) {
	t.Helper()

	server := New(slog.New(slog.NewJSONHandler(io.Discard, nil)), sessions)
	httpServer := httptest.NewServer(server.Handler(context.Background()))
	t.Cleanup(httpServer.Close)

	return server, "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
}

func dial(t *testing.T, url string, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, resp
}

func exchange(t *testing.T, conn *websocket.Conn, action string, payload any) (string, Payload) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: data}))

	return receive(t, conn)
}

func receive(t *testing.T, conn *websocket.Conn) (string, Payload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	var payload Payload
	if len(message.Payload) > 0 {
		require.NoError(t, json.Unmarshal(message.Payload, &payload))
	}

	return message.Action, payload
}

func TestServer_Connect(t *testing.T) {
	t.Run("Sets the session cookie and creates the player", func(t *testing.T) {
		// Given: A server and a client without cookies
		sessions := &sessionsMock{}
		_, url := startServer(t, sessions)

		var cookieID string
		sessions.On("GetOrCreatePlayer", mock.Anything, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { cookieID = args.String(1) }).
			Return(&entity.Player{ID: "p1"}, nil).
			Once()
		sessions.On("SuspendSession", mock.Anything, "p1").Return(nil).Maybe()

		// When: Connecting
		conn, resp := dial(t, url, nil)
		action, payload := exchange(t, conn, ActionConnect, Request{})

		// Then: The cookie carries the id used for the player
		cookies := resp.Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessionCookie, cookies[0].Name)
		assert.Equal(t, cookies[0].Value, cookieID)

		assert.Equal(t, ActionConnect, action)
		require.NotNil(t, payload.Player)
		assert.Equal(t, "p1", payload.Player.ID)
		assert.Nil(t, payload.Game)
	})

	t.Run("Returns the running game of a known player", func(t *testing.T) {
		// Given: A player already in a session
		sessions := &sessionsMock{}
		_, url := startServer(t, sessions)

		update := &usecase.Update{SessionID: "s1", Kind: arcade.KindSnake, Status: arcade.StatusOngoing}
		sessions.On("GetOrCreatePlayer", mock.Anything, "known").
			Return(&entity.Player{ID: "known", SessionID: "s1"}, nil).
			Once()
		sessions.On("GetSession", mock.Anything, "known").Return(update, nil).Once()
		sessions.On("SuspendSession", mock.Anything, "known").Return(nil).Maybe()

		header := http.Header{}
		header.Add("Cookie", sessionCookie+"=known")

		// When: Connecting with the cookie
		conn, resp := dial(t, url, header)
		_, payload := exchange(t, conn, ActionConnect, Request{})

		// Then: No new cookie is set and the game is included
		assert.Empty(t, resp.Cookies())
		require.NotNil(t, payload.Game)
		assert.Equal(t, "s1", payload.Game.SessionID)
	})
}

func TestServer_Game(t *testing.T) {
	t.Run("Needs connect first", func(t *testing.T) {
		// Given: A fresh connection
		sessions := &sessionsMock{}
		_, url := startServer(t, sessions)
		conn, _ := dial(t, url, nil)

		// When: Starting a game before connect
		action, payload := exchange(t, conn, ActionGameNew, Request{Game: &GameRequest{Kind: arcade.KindSnake}})

		// Then: The error names the action
		assert.Equal(t, ActionGameNew, action)
		assert.Equal(t, errNotConnected.Error(), payload.Error)
	})

	t.Run("Starts, plays and leaves", func(t *testing.T) {
		// Given: A connected player
		sessions := &sessionsMock{}
		_, url := startServer(t, sessions)

		cell := 4
		input := arcade.Input{Action: "mark", Cell: &cell}
		started := &usecase.Update{SessionID: "s1", Kind: arcade.KindTicTacToe, Status: arcade.StatusOngoing}

		sessions.On("GetOrCreatePlayer", mock.Anything, "p1").Return(&entity.Player{ID: "p1"}, nil).Once()
		sessions.On("StartSession", mock.Anything, "p1", arcade.KindTicTacToe, arcade.Options{Mode: arcade.ModeAI}).
			Return(started, nil).
			Once()
		sessions.On("HandleInput", mock.Anything, "p1", input).Return(started, nil).Once()
		sessions.On("GetSession", mock.Anything, "p1").Return(started, nil).Once()
		sessions.On("EndSession", mock.Anything, "p1").Return(nil).Once()
		sessions.On("SuspendSession", mock.Anything, "p1").Return(nil).Maybe()

		conn, _ := dial(t, url, nil)
		exchange(t, conn, ActionConnect, Request{Player: &entity.Player{ID: "p1"}})

		// When: Starting tic-tac-toe against the AI
		action, payload := exchange(t, conn, ActionGameNew, Request{
			Game: &GameRequest{Kind: arcade.KindTicTacToe, Options: arcade.Options{Mode: arcade.ModeAI}},
		})

		// Then: The new session is returned
		assert.Equal(t, ActionGameNew, action)
		require.NotNil(t, payload.Game)
		assert.Equal(t, "s1", payload.Game.SessionID)

		// When: Marking a cell, asking for state and leaving
		action, payload = exchange(t, conn, ActionGameInput, Request{Input: &input})
		assert.Equal(t, ActionGameInput, action)
		assert.Empty(t, payload.Error)

		action, _ = exchange(t, conn, ActionGameState, Request{})
		assert.Equal(t, ActionGameState, action)

		action, payload = exchange(t, conn, ActionGameLeave, Request{})

		// Then: Every call reached the session manager
		assert.Equal(t, ActionGameLeave, action)
		assert.Empty(t, payload.Error)
		sessions.AssertExpectations(t)
	})

	t.Run("Domain errors are forwarded", func(t *testing.T) {
		// Given: A connected player whose input is rejected
		sessions := &sessionsMock{}
		_, url := startServer(t, sessions)

		sessions.On("GetOrCreatePlayer", mock.Anything, "p1").Return(&entity.Player{ID: "p1"}, nil).Once()
		sessions.On("HandleInput", mock.Anything, "p1", mock.Anything).
			Return(nil, apperror.ErrNoActiveSession).
			Once()
		sessions.On("SuspendSession", mock.Anything, "p1").Return(nil).Maybe()

		conn, _ := dial(t, url, nil)
		exchange(t, conn, ActionConnect, Request{Player: &entity.Player{ID: "p1"}})

		// When: Sending input, a missing input and an unknown action
		_, payload := exchange(t, conn, ActionGameInput, Request{Input: &arcade.Input{Action: "flap"}})
		assert.Equal(t, apperror.ErrNoActiveSession.Error(), payload.Error)

		_, payload = exchange(t, conn, ActionGameInput, Request{})
		assert.Equal(t, errInputRequired.Error(), payload.Error)

		action, payload := exchange(t, conn, "game:join", Request{})

		// Then: Each error names the failed action
		assert.Equal(t, "game:join", action)
		assert.Equal(t, errUnknownAction.Error(), payload.Error)
	})
}

func TestServer_Publish(t *testing.T) {
	t.Run("Pushes updates and suspends on disconnect", func(t *testing.T) {
		// Given: A connected player
		sessions := &sessionsMock{}
		server, url := startServer(t, sessions)

		suspended := make(chan struct{})
		sessions.On("GetOrCreatePlayer", mock.Anything, "p1").Return(&entity.Player{ID: "p1"}, nil).Once()
		sessions.On("SuspendSession", mock.Anything, "p1").
			Run(func(mock.Arguments) { close(suspended) }).
			Return(nil).
			Once()

		conn, _ := dial(t, url, nil)
		exchange(t, conn, ActionConnect, Request{Player: &entity.Player{ID: "p1"}})

		// When: The clock publishes an update
		server.Publish("p1", &usecase.Update{SessionID: "s1", Status: arcade.StatusFinished})

		// Then: It arrives as game:update
		action, payload := receive(t, conn)
		assert.Equal(t, ActionGameUpdate, action)
		require.NotNil(t, payload.Game)
		assert.Equal(t, arcade.StatusFinished, payload.Game.Status)

		// When: The client goes away
		require.NoError(t, conn.Close())

		// Then: The session is suspended
		select {
		case <-suspended:
		case <-time.After(2 * time.Second):
			t.Fatal("session was not suspended")
		}

		// Publishing to a gone player is a no-op
		server.Publish("p1", &usecase.Update{})
	})
}
