package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/games/checkers"
)

// Restarter - builds the game a restart switches to.
type Restarter func() (arcade.Game, error)

// Player runs one game on a screen.
type Player struct {
	logger     *slog.Logger
	screen     *Screen
	restart    Restarter
	controller *Controller

	mu      sync.Mutex
	game    arcade.Game
	message string

	clockCancel context.CancelFunc
	clockDone   chan struct{}
}

func NewPlayer(logger *slog.Logger, screen *Screen, game arcade.Game, restart Restarter) *Player {
	return &Player{
		logger:     logger.With("component", "terminal", "kind", game.Kind()),
		screen:     screen,
		restart:    restart,
		controller: NewController(game.Kind()),
		game:       game,
	}
}

// Run - plays until the user quits or ctx is done.
func (that *Player) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer that.stopClock()

	go func() {
		<-ctx.Done()
		that.screen.Wake()
	}()

	that.startClock(ctx)

	for {
		that.draw()

		if ctx.Err() != nil {
			return nil
		}

		switch ev := that.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			that.screen.Sync()
		case *tcell.EventKey:
			if quit := that.handleKey(ctx, ev); quit {
				return nil
			}
		}
	}
}

func (that *Player) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	in, command := that.controller.Key(ev)

	switch command {
	case CommandQuit:
		return true
	case CommandInput:
		if err := that.apply(ctx, in); err != nil {
			that.logger.Error("failed to restart", "error", err)
			that.setMessage(err.Error())
		}
	}

	return false
}

func (that *Player) apply(ctx context.Context, in arcade.Input) error {
	log := that.logger.With("method", "apply")

	if in.Action == arcade.ActionRestart {
		game, err := that.restart()
		if err != nil {
			return fmt.Errorf("failed to restart: %w", err)
		}

		that.stopClock()

		that.mu.Lock()
		that.game = game
		that.message = ""
		that.mu.Unlock()

		that.controller.Reset()
		that.startClock(ctx)

		return nil
	}

	that.mu.Lock()
	err := that.game.Apply(in)
	that.message = ""
	if err != nil && !errors.Is(err, apperror.ErrGameFinished) {
		log.Debug("input rejected", "action", in.Action, "error", err)
		that.message = err.Error()
	}
	if snapshot, ok := that.game.Snapshot().(checkers.Snapshot); ok {
		that.controller.Follow(snapshot.Forced)
	}
	that.mu.Unlock()

	// a flap after game over or a resumed game needs the clock again
	that.startClock(ctx)

	return nil
}

func (that *Player) setMessage(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.message = message
}

func (that *Player) draw() {
	that.mu.Lock()
	frame := that.game.View()
	message := that.message
	that.mu.Unlock()

	if len(frame.Cells) > 0 {
		that.controller.SetBounds(len(frame.Cells), len(frame.Cells[0]))
	}

	Render(that.screen, View{
		Frame:    frame,
		Cursor:   that.controller.Cursor(),
		Selected: that.controller.Selected(),
		Message:  message,
		Help:     that.controller.Help(),
	})
}

// startClock - runs the game clock unless it already runs or the game is turn based.
func (that *Player) startClock(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clockDone != nil {
		select {
		case <-that.clockDone:
			that.clockCancel()
		default:
			return
		}
	}

	if that.game.TickInterval() <= 0 || that.game.Status() == arcade.StatusFinished {
		return
	}

	clockCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	that.clockCancel, that.clockDone = cancel, done
	game := that.game

	go func() {
		defer close(done)

		arcade.Loop(clockCtx, game, &that.mu, func(changed bool) {
			if changed {
				that.screen.Wake()
			}
		})
	}()
}

func (that *Player) stopClock() {
	that.mu.Lock()
	cancel, done := that.clockCancel, that.clockDone
	that.clockCancel, that.clockDone = nil, nil
	that.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Game - the game on screen, it changes on restart.
func (that *Player) Game() arcade.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game
}
