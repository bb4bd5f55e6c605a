package minesweeper

import (
	"github.com/gammazero/deque"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

// flood reveals start and, breadth first, everything reachable through cells
// without neighbouring mines. Flags stop the fill.
func (that *Game) flood(start arcade.Position) {
	var queue deque.Deque[arcade.Position]
	queue.PushBack(start)

	for queue.Len() > 0 {
		pos := queue.PopFront()

		current := that.at(pos)
		if current.revealed || current.flagged || current.mine {
			continue
		}

		current.revealed = true
		that.revealed++

		if current.neighbors == 0 {
			that.neighbors(pos, queue.PushBack)
		}
	}
}
