package terminal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/games/tictactoe"
)

func simulationScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := newScreen(sim)
	require.NoError(t, err)
	sim.SetSize(80, 40)
	t.Cleanup(screen.Close)

	return screen, sim
}

func TestRender(t *testing.T) {
	t.Run("Draws title, board and status", func(t *testing.T) {
		// Given: A small frame
		screen, sim := simulationScreen(t)
		frame := arcade.NewFrame("Demo", 2, 2)
		frame.Set(1, 1, 'X', arcade.TonePrimary)
		frame.Status = []string{"Score: 1"}

		// When: Rendering it
		Render(screen, View{Frame: frame, Message: "oops"})

		// Then: Every part is on screen
		r, _, _, _ := sim.GetContent(boardLeft, 0)
		assert.Equal(t, 'D', r)

		r, _, _, _ = sim.GetContent(boardLeft+2, boardTop+1)
		assert.Equal(t, 'X', r)

		r, _, _, _ = sim.GetContent(boardLeft, boardTop)
		assert.Equal(t, '·', r)

		r, _, _, _ = sim.GetContent(boardLeft, boardTop+3)
		assert.Equal(t, 'S', r)

		r, _, _, _ = sim.GetContent(boardLeft, boardTop+4)
		assert.Equal(t, 'o', r)
	})
}

func TestPlayer_Run(t *testing.T) {
	t.Run("Keys reach the game and restart builds a new one", func(t *testing.T) {
		// Given: A hot-seat tic-tac-toe game on a simulated screen
		screen, sim := simulationScreen(t)
		game := tictactoe.New(arcade.ModePvP, arcade.Medium, 1)

		restarted := 0
		player := NewPlayer(slog.New(slog.NewJSONHandler(io.Discard, nil)), screen, game, func() (arcade.Game, error) {
			restarted++
			return tictactoe.New(arcade.ModePvP, arcade.Medium, 2), nil
		})

		// When: X marks the corner, O the next cell, then quit
		sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
		sim.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
		sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
		sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

		require.NoError(t, player.Run(context.Background()))

		// Then: Both marks were placed
		snapshot := game.Snapshot().(tictactoe.Snapshot)
		assert.Equal(t, tictactoe.PlayerX, snapshot.Board[0])
		assert.Equal(t, tictactoe.PlayerO, snapshot.Board[1])
		assert.Zero(t, restarted)
	})

	t.Run("Restart and cancel", func(t *testing.T) {
		// Given: A player running in the background
		screen, sim := simulationScreen(t)
		game := tictactoe.New(arcade.ModePvP, arcade.Medium, 1)

		restarts := make(chan struct{}, 1)
		player := NewPlayer(slog.New(slog.NewJSONHandler(io.Discard, nil)), screen, game, func() (arcade.Game, error) {
			restarts <- struct{}{}
			return tictactoe.New(arcade.ModePvP, arcade.Medium, 2), nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- player.Run(ctx) }()

		// When: r is pressed
		sim.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)

		// Then: The restarter is called
		select {
		case <-restarts:
		case <-time.After(2 * time.Second):
			t.Fatal("restart was not requested")
		}

		// When: The context is cancelled
		cancel()

		// Then: Run returns
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("player did not stop")
		}
	})
}
