package arcade

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoop(t *testing.T) {
	t.Run("Ticks until the game finishes", func(t *testing.T) {
		// Given: a game that finishes after three ticks
		game := &counter{Interval: time.Millisecond, Limit: 3, State: StatusOngoing}
		var mu sync.Mutex
		calls := 0

		// When: the loop runs
		Loop(context.Background(), game, &mu, func(bool) { calls++ })

		// Then: it stopped by itself after three ticks
		assert.Equal(t, 3, game.Ticks)
		assert.Equal(t, 3, calls)
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		// Given: an endless game
		game := &counter{Interval: time.Millisecond, State: StatusOngoing}
		var mu sync.Mutex
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			Loop(ctx, game, &mu, nil)
			close(done)
		}()

		// When: the context is cancelled
		time.Sleep(10 * time.Millisecond)
		cancel()

		// Then: the loop returns
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("loop did not stop")
		}
		mu.Lock()
		defer mu.Unlock()
		assert.Positive(t, game.Ticks)
	})

	t.Run("Returns at once for turn based games", func(t *testing.T) {
		// Given: a game without a clock
		game := &counter{State: StatusOngoing}
		var mu sync.Mutex

		// When: the loop runs
		Loop(context.Background(), game, &mu, nil)

		// Then: nothing ticked
		assert.Zero(t, game.Ticks)
	})
	t.Run("Calls onTick without the lock", func(t *testing.T) {
		// Given: a game that finishes after two ticks
		game := &counter{Interval: time.Millisecond, Limit: 2, State: StatusOngoing}
		var mu sync.Mutex
		free := 0

		// When: the callback tries to take the lock itself
		Loop(context.Background(), game, &mu, func(bool) {
			if mu.TryLock() {
				free++
				mu.Unlock()
			}
		})

		// Then: the lock was free on every tick
		assert.Equal(t, 2, free)
	})
}
