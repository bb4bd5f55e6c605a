package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

func testCatalog() []arcade.Entry {
	return []arcade.Entry{
		{Kind: arcade.KindSnake, Title: "Snake", Players: 1, Realtime: true},
		{Kind: arcade.KindTicTacToe, Title: "Tic-Tac-Toe", Players: 2, Modes: []arcade.Mode{arcade.ModeAI, arcade.ModePvP}},
	}
}

func TestServer(t *testing.T) {
	mux := NewMux(NewHandlers(testCatalog))

	t.Run("Ping", func(t *testing.T) {
		// When: Requesting /ping
		recorder := httptest.NewRecorder()
		mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		// Then: The server answers pong
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "pong", recorder.Body.String())
	})

	t.Run("Catalog", func(t *testing.T) {
		// When: Requesting the home screen
		recorder := httptest.NewRecorder()
		mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/games", nil))

		// Then: Every game is listed in order with its route
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var games []map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &games))
		require.Len(t, games, 2)
		assert.Equal(t, "snake", games[0]["kind"])
		assert.Equal(t, "/snake", games[0]["route"])
		assert.Equal(t, true, games[0]["realtime"])
		assert.Equal(t, []any{"ai", "pvp"}, games[1]["modes"])
	})

	t.Run("Wrong method", func(t *testing.T) {
		// When: Posting to /games
		recorder := httptest.NewRecorder()
		mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/games", nil))

		// Then: It is not allowed
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
