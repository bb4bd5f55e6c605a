package arcade

import (
	"context"
	"sync"
	"time"
)

// Loop drives the game clock until ctx is done or the game finishes. The
// locker guards the game against concurrent input handlers; onTick runs after
// it is released and must lock again to read the game.
func Loop(ctx context.Context, game Game, locker sync.Locker, onTick func(changed bool)) {
	locker.Lock()
	interval := game.TickInterval()
	locker.Unlock()

	if interval <= 0 {
		return
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		locker.Lock()
		changed := game.Tick()
		finished := game.Status() == StatusFinished
		interval = game.TickInterval()
		locker.Unlock()

		if onTick != nil {
			onTick(changed)
		}

		if finished || interval <= 0 {
			return
		}

		timer.Reset(interval)
	}
}
